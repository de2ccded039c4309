package procinfo_windows

// enumGrow sizes the array for a full pid enumeration. The platform only
// signals a too small array by filling it completely, so the array grows by
// a fixed step until a call leaves slack.
func enumGrow(probe func(buf []uint32) (uint32, error)) ([]uint32, error) {
	const step = 1024
	size := step
	for {
		buf := make([]uint32, size)
		returned, err := probe(buf)
		if err != nil {
			return nil, err
		}
		if int(returned) < len(buf) {
			return buf[:returned], nil
		}
		size += step
	}
}
