// Package sort provides topological sorting of file descriptor protos, so
// that a file always appears after every file it imports.
package sort

import (
	"fmt"

	"google.golang.org/protobuf/types/descriptorpb"
)

// SortFiles topologically sorts the given files in place. It returns an error
// if the given files include duplicates (more than one entry with the same
// path) or if any of the files refer to imports which are not present in the
// given files. Files with no dependency relationship keep their relative
// order.
func SortFiles(files []*descriptorpb.FileDescriptorProto) error {
	byName := make(map[string]*descriptorpb.FileDescriptorProto, len(files))
	for _, fd := range files {
		if _, ok := byName[fd.GetName()]; ok {
			return fmt.Errorf("duplicate file %q", fd.GetName())
		}
		byName[fd.GetName()] = fd
	}
	sorted := make([]*descriptorpb.FileDescriptorProto, 0, len(files))
	// 0 = unvisited, 1 = visiting, 2 = done; a file seen while visiting is
	// part of a cycle, which a valid descriptor set cannot contain, so it is
	// simply skipped rather than reported.
	state := make(map[string]int, len(files))
	var visit func(fd *descriptorpb.FileDescriptorProto) error
	visit = func(fd *descriptorpb.FileDescriptorProto) error {
		if state[fd.GetName()] != 0 {
			return nil
		}
		state[fd.GetName()] = 1
		for _, dep := range fd.GetDependency() {
			depFd, ok := byName[dep]
			if !ok {
				return fmt.Errorf("file %q imports %q, but %q is not present", fd.GetName(), dep, dep)
			}
			if err := visit(depFd); err != nil {
				return err
			}
		}
		state[fd.GetName()] = 2
		sorted = append(sorted, fd)
		return nil
	}
	for _, fd := range files {
		if err := visit(fd); err != nil {
			return err
		}
	}
	copy(files, sorted)
	return nil
}
