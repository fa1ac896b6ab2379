package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Filename records a file name under the key "filename".
func Filename(name string) slog.Attr {
	return slog.String("filename", name)
}

// Path records a storage path under the key "path".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// StoreID records the store identifier under the key "store_id".
// If id is nil, it returns an empty Attr.
func StoreID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("store_id", id)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// ConfigPath records a scope config path under the key "config_path".
func ConfigPath(p string) slog.Attr {
	return slog.String("config_path", p)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}
