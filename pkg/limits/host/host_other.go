//go:build !linux && !darwin

package host

const inodesSupported = false

func inodes(string) (Usage, error) {
	return Usage{}, ErrUnsupported
}

func nameMax(string) (int, error) {
	return 0, ErrUnsupported
}

func pathMax(string) (int, error) {
	return 0, ErrUnsupported
}
