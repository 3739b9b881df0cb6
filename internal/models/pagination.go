package models

// PageLimits bounds the count/offset pagination of one listing endpoint.
type PageLimits struct {
	DefaultCount int
	MaxCount     int
	MaxOffset    int
}

// Clamp applies the limits to the requested values. A nil count means the
// default; negative values are raised to zero.
func (l PageLimits) Clamp(count, offset *int) (int, int) {
	c := l.DefaultCount
	if count != nil {
		c = *count
	}
	o := 0
	if offset != nil {
		o = *offset
	}
	return clamp(c, 0, l.MaxCount), clamp(o, 0, l.MaxOffset)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PageRequest carries the raw count and offset of a listing request; nil
// means the parameter was absent.
type PageRequest struct {
	Count  *int
	Offset *int
}
