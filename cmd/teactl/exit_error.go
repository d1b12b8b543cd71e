// SPDX-License-Identifier: MPL-2.0

package cmd

import "strconv"

// ExitError ends the process with Code once the failure has been reported. The
// error handler prints nothing for it.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return "exit status " + strconv.Itoa(e.Code)
}
