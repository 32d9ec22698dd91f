package execx

import (
	"errors"
	"strings"
)

// wrapError prefers the command's own output over the generic exec error
// ("exit status 128" tells the user nothing; the stderr line does).
func wrapError(err error, output []byte) error {
	msg := strings.TrimSpace(string(output))
	if msg == "" {
		return err
	}
	return errors.New(msg)
}
