package release

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Interrupted reports whether err is an interrupted system call.
func Interrupted(err error) bool {
	return errors.Is(err, unix.EINTR)
}

// RetryInterrupted calls op until it returns something other than EINTR and
// reports how many attempts were made. Any non-interruption error is the
// terminal outcome.
func RetryInterrupted(op func() error) (attempts int, err error) {
	for {
		attempts++
		err = op()
		if !Interrupted(err) {
			return attempts, err
		}
	}
}
