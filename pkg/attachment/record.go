package attachment

import "strings"

// Attachable is implemented by models that reference an uploaded file.
type Attachable interface {
	SetFile(file string)
	SetFileExt(ext string)
}

// Record is the minimal attachment model: the stored file name and its extension.
type Record struct {
	File    string `json:"file"`
	FileExt string `json:"file_ext"`
}

func (r *Record) SetFile(file string) { r.File = file }

func (r *Record) SetFileExt(ext string) { r.FileExt = ext }

// PathForDB returns the persisted path of the record's file, or an empty
// string when no file is attached.
func (r *Record) PathForDB() string {
	if r.File == "" {
		return ""
	}
	return strings.TrimLeft(r.File, "/")
}
