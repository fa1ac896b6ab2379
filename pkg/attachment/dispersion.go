package attachment

import "strings"

// dispersionDepth is the number of leading filename bytes turned into directories.
const dispersionDepth = 2

// DispersionPath returns the two-level directory prefix a file is stored
// under, e.g. "file.txt" => "/f/i". Each of the first two bytes of the name
// becomes one directory: ASCII letters are lower-cased and a dot is replaced
// with an underscore. Names shorter than two bytes produce a single level.
//
// The rule matches the storefront's upload dispersion so paths of files
// written by either side agree.
func DispersionPath(filename string) (string, error) {
	if filename == "" {
		return "", ErrInvalidInput
	}

	var b strings.Builder
	for i := 0; i < len(filename) && i < dispersionDepth; i++ {
		c := filename[i]
		switch {
		case c == '.':
			c = '_'
		case 'A' <= c && c <= 'Z':
			c += 'a' - 'A'
		}
		b.WriteByte('/')
		b.WriteByte(c)
	}

	return b.String(), nil
}

// PathForDB returns the value persisted in an attachment record for
// filename: its dispersion path joined with the name, without a leading
// separator, e.g. "file.txt" => "f/i/file.txt".
func PathForDB(filename string) (string, error) {
	dispersion, err := DispersionPath(filename)
	if err != nil {
		return "", err
	}
	return strings.TrimLeft(strings.TrimLeft(dispersion, "/")+"/"+filename, "/"), nil
}
