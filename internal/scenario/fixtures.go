package scenario

import _ "embed"

// Contents of the file committed in the first and second change
var (
	//go:embed fixtures/bak_v1.py
	firstVersion []byte

	//go:embed fixtures/bak_v1_comments.py
	secondVersion []byte
)
