package shared

import (
	"os"
)

const (
	OwnerReadWrite     = os.FileMode(0600)
	OwnerReadWriteExec = os.FileMode(0700)
)
