package parallel

// Band is a half-open range of pixel rows [Y0, Y1) assigned to one worker.
type Band struct {
	Y0 int
	Y1 int
}

// Bands splits height rows into at most n contiguous bands of nearly equal
// size. Rows are never split; when height does not divide evenly, the first
// height%n bands get one extra row. Returns fewer than n bands when there are
// fewer rows than workers, and nil when height or n is not positive.
func Bands(height, n int) []Band {
	if height <= 0 || n <= 0 {
		return nil
	}
	if n > height {
		n = height
	}

	bands := make([]Band, 0, n)
	base := height / n
	extra := height % n

	y := 0
	for i := range n {
		size := base
		if i < extra {
			size++
		}
		bands = append(bands, Band{Y0: y, Y1: y + size})
		y += size
	}
	return bands
}
