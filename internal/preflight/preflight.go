package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Checks describes what to verify before an organize run.
type Checks struct {
	Source            string
	Destination       string
	FreeSpaceFloorMiB int64
}

// RunAll executes every applicable check. Callers abort when any result has
// Passed false.
func RunAll(checks Checks) []Result {
	var results []Result
	if checks.Source != "" {
		results = append(results, CheckSourceReadable(checks.Source))
	}
	if checks.Destination != "" {
		results = append(results, CheckDirectoryAccess("Destination", checks.Destination))
		if checks.FreeSpaceFloorMiB > 0 {
			results = append(results, CheckFreeSpace(checks.Destination, checks.FreeSpaceFloorMiB))
		}
	}
	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}

// CheckSourceReadable verifies the source directory exists and is readable.
func CheckSourceReadable(path string) Result {
	const name = "Source"
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFreeSpace verifies the filesystem holding path has at least floorMiB
// mebibytes available.
func CheckFreeSpace(path string, floorMiB int64) Result {
	const name = "Free space"
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	availMiB := int64(stat.Bavail) * stat.Bsize / (1024 * 1024)
	if availMiB < floorMiB {
		return Result{Name: name, Detail: fmt.Sprintf("%s (%d MiB available, %d MiB required)", path, availMiB, floorMiB)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d MiB available)", path, availMiB)}
}
