package stats

import "slices"

// ledger holds the outstanding delivery tags of one channel in ascending
// order. It is not safe for concurrent use; channelState serializes access.
type ledger struct {
	tags []DeliveryTag
}

// record adds tag. Tags normally arrive in increasing order and are
// appended; an out-of-order tag is inserted in place and a duplicate is
// ignored.
func (l *ledger) record(tag DeliveryTag) {
	n := len(l.tags)
	if n == 0 || tag > l.tags[n-1] {
		l.tags = append(l.tags, tag)
		return
	}
	i, found := slices.BinarySearch(l.tags, tag)
	if found {
		return
	}
	l.tags = slices.Insert(l.tags, i, tag)
}

// resolveOne removes tag and reports whether it was outstanding.
func (l *ledger) resolveOne(tag DeliveryTag) bool {
	i, found := slices.BinarySearch(l.tags, tag)
	if !found {
		return false
	}
	if i == 0 {
		// Acks usually arrive oldest first; avoid shifting the whole slice.
		l.tags = l.tags[1:]
		return true
	}
	l.tags = slices.Delete(l.tags, i, i+1)
	return true
}

// resolveUpTo removes every outstanding tag <= tag and returns how many were
// removed. tag itself does not need to be outstanding.
func (l *ledger) resolveUpTo(tag DeliveryTag) int {
	i, found := slices.BinarySearch(l.tags, tag)
	if found {
		i++
	}
	if i == 0 {
		return 0
	}
	l.tags = l.tags[i:]
	return i
}

func (l *ledger) len() int {
	return len(l.tags)
}

func (l *ledger) drop() {
	l.tags = nil
}
