package reslib

import "testing"

type chainNode struct {
	Link[chainNode]
	v int
}

func (n *chainNode) Ident() ID { return NewIntID(uint64(n.v)) }

func chainValues(head *chainNode) []int {
	var got []int
	for r := head; r != nil; r = r.Next() {
		got = append(got, r.v)
	}
	return got
}

func TestChainPushFrontOrder(t *testing.T) {
	var head *chainNode
	chainPushFront[chainNode, *chainNode](&head, &chainNode{v: 1})
	chainPushFront[chainNode, *chainNode](&head, &chainNode{v: 2})
	chainPushFront[chainNode, *chainNode](&head, &chainNode{v: 3})

	got := chainValues(head)
	want := []int{3, 2, 1}
	if len(got) != len(want) {
		t.Fatalf("chain = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("chain = %v, want %v", got, want)
		}
	}
}

func TestChainPopFrontEmpty(t *testing.T) {
	var head *chainNode
	if r := chainPopFront[chainNode, *chainNode](&head); r != nil {
		t.Fatalf("chainPopFront on empty chain = %v, want nil", r)
	}
}

func TestChainPopFrontOrder(t *testing.T) {
	var head *chainNode
	chainPushFront[chainNode, *chainNode](&head, &chainNode{v: 1})
	chainPushFront[chainNode, *chainNode](&head, &chainNode{v: 2})

	r := chainPopFront[chainNode, *chainNode](&head)
	if r.v != 2 {
		t.Fatalf("popped %d, want 2", r.v)
	}
	if r.Next() != nil {
		t.Fatal("popped node still links to the rest of the chain")
	}
	if chainLen[chainNode, *chainNode](head) != 1 {
		t.Fatalf("chain len = %d, want 1", chainLen[chainNode, *chainNode](head))
	}
}

func TestChainFindAndRemoveMatchHead(t *testing.T) {
	var head *chainNode
	chainPushFront[chainNode, *chainNode](&head, &chainNode{v: 1})
	chainPushFront[chainNode, *chainNode](&head, &chainNode{v: 2})
	chainPushFront[chainNode, *chainNode](&head, &chainNode{v: 3})

	match := func(v int) func(*chainNode) bool {
		return func(n *chainNode) bool { return n.v == v }
	}

	if n := chainFind[chainNode, *chainNode](head, match(2)); n == nil || n.v != 2 {
		t.Fatalf("chainFind(2) = %v", n)
	}

	removed := chainRemoveMatch[chainNode, *chainNode](&head, match(3))
	if removed == nil || removed.v != 3 {
		t.Fatalf("removed head = %v, want 3", removed)
	}
	if got := chainValues(head); len(got) != 2 || got[0] != 2 || got[1] != 1 {
		t.Fatalf("chain after removing head = %v, want [2 1]", got)
	}
}

func TestChainRemoveMatchMiddle(t *testing.T) {
	var head *chainNode
	chainPushFront[chainNode, *chainNode](&head, &chainNode{v: 1})
	chainPushFront[chainNode, *chainNode](&head, &chainNode{v: 2})
	chainPushFront[chainNode, *chainNode](&head, &chainNode{v: 3})

	removed := chainRemoveMatch[chainNode, *chainNode](&head, func(n *chainNode) bool { return n.v == 2 })
	if removed == nil || removed.v != 2 {
		t.Fatalf("removed = %v, want 2", removed)
	}
	if got := chainValues(head); len(got) != 2 || got[0] != 3 || got[1] != 1 {
		t.Fatalf("chain after removing middle = %v, want [3 1]", got)
	}
}

func TestChainRemoveMatchNotFound(t *testing.T) {
	var head *chainNode
	chainPushFront[chainNode, *chainNode](&head, &chainNode{v: 1})

	if r := chainRemoveMatch[chainNode, *chainNode](&head, func(n *chainNode) bool { return n.v == 99 }); r != nil {
		t.Fatalf("chainRemoveMatch found a nonexistent value: %v", r)
	}
	if chainLen[chainNode, *chainNode](head) != 1 {
		t.Fatal("chain was mutated despite no match")
	}
}

func TestChainForEachToleratesUnlinkingCurrent(t *testing.T) {
	var head *chainNode
	for v := 1; v <= 5; v++ {
		chainPushFront[chainNode, *chainNode](&head, &chainNode{v: v})
	}

	var visited []int
	chainForEach[chainNode, *chainNode](head, func(n *chainNode) bool {
		visited = append(visited, n.v)
		if n.v%2 == 0 {
			chainRemoveMatch[chainNode, *chainNode](&head, func(x *chainNode) bool { return x.v == n.v })
		}
		return true
	})

	if len(visited) != 5 {
		t.Fatalf("visited %v, want all 5 original nodes", visited)
	}
	remaining := chainValues(head)
	for _, v := range remaining {
		if v%2 == 0 {
			t.Fatalf("even value %d survived removal, remaining = %v", v, remaining)
		}
	}
}

func TestChainForEachEarlyStop(t *testing.T) {
	var head *chainNode
	for v := 1; v <= 5; v++ {
		chainPushFront[chainNode, *chainNode](&head, &chainNode{v: v})
	}

	n := 0
	chainForEach[chainNode, *chainNode](head, func(*chainNode) bool {
		n++
		return n < 2
	})
	if n != 2 {
		t.Fatalf("visited %d nodes, want 2", n)
	}
}
