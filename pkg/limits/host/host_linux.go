//go:build linux

package host

import (
	"golang.org/x/sys/unix"
)

const inodesSupported = true

func statfs(path string) (unix.Statfs_t, error) {
	var st unix.Statfs_t
	err := unix.Statfs(path, &st)
	return st, err
}

func inodes(path string) (Usage, error) {
	st, err := statfs(path)
	if err != nil {
		return Usage{}, err
	}
	return Usage{Total: st.Files, Free: st.Ffree}, nil
}

// nameMax mirrors glibc's pathconf(_PC_NAME_MAX), which reads f_namelen.
func nameMax(path string) (int, error) {
	st, err := statfs(path)
	if err != nil {
		return 0, err
	}
	return int(st.Namelen), nil
}

// pathMax mirrors glibc's pathconf(_PC_PATH_MAX): a fixed PATH_MAX for any
// path that can be resolved.
func pathMax(path string) (int, error) {
	if _, err := statfs(path); err != nil {
		return 0, err
	}
	return unix.PathMax, nil
}
