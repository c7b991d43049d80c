package search

import "github.com/crossplay/crossfill/internal/boardsize"

// usedWords is the set of word IDs already placed in shallower frames,
// represented as a persistent singly-linked list: pushing a sibling
// candidate costs one allocation and shares every ancestor frame's
// list, rather than copying a set per branch. Membership is the
// "linear scan of the used-words prefix" the no-repeat rule permits.
type usedWords struct {
	word boardsize.WordID
	prev *usedWords
}

func (u *usedWords) contains(w boardsize.WordID) bool {
	for n := u; n != nil; n = n.prev {
		if n.word == w {
			return true
		}
	}
	return false
}

func (u *usedWords) push(w boardsize.WordID) *usedWords {
	return &usedWords{word: w, prev: u}
}
