package ecs

// Each2 iterates, in id order, over entities active in both stores.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	n := min(len(sa.data), len(sb.data))
	for i := 0; i < n; i++ {
		if sa.active[i] && sb.active[i] {
			fn(EntityID(i), &sa.data[i], &sb.data[i])
		}
	}
}

// Each3 iterates, in id order, over entities active in all three stores.
func Each3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(EntityID, *A, *B, *C)) {
	n := min(len(sa.data), len(sb.data), len(sc.data))
	for i := 0; i < n; i++ {
		if sa.active[i] && sb.active[i] && sc.active[i] {
			fn(EntityID(i), &sa.data[i], &sb.data[i], &sc.data[i])
		}
	}
}
