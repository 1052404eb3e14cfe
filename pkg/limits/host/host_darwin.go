//go:build darwin

package host

import (
	"golang.org/x/sys/unix"
)

const inodesSupported = true

// pathconf(2) selectors from <sys/unistd.h>.
const (
	pcNameMax = 4
	pcPathMax = 5
)

func inodes(path string) (Usage, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return Usage{}, err
	}
	return Usage{Total: st.Files, Free: st.Ffree}, nil
}

func nameMax(path string) (int, error) {
	return unix.Pathconf(path, pcNameMax)
}

func pathMax(path string) (int, error) {
	return unix.Pathconf(path, pcPathMax)
}
