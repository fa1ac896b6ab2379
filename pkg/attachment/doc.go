// Package attachment stores product attachment files under a media root
// using a two-level dispersion layout.
//
// A file named "manual.pdf" lives at "<root>/m/a/manual.pdf". The folder is
// derived from the first two bytes of the name by DispersionPath, and the
// value persisted in attachment records is produced by PathForDB
// ("m/a/manual.pdf").
//
// Store implements the file lifecycle on top of a file.Storage backend:
//
//	storage, _ := file.NewLocalStorage("/var/www/media/productattach", "https://shop.example/media/productattach")
//	store := attachment.NewStore(storage)
//
//	if err := store.Save(ctx, "manual.pdf", contentBase64); err != nil {
//		// errors.Is(err, attachment.ErrEmptyContent), attachment.ErrIO, ...
//	}
//	_ = store.Delete(ctx, "m/a/manual.pdf")
//
// Delete only removes files with a whitelisted extension (pdf, jpg, png, gif,
// compared case-sensitively) and never touches a path containing "..".
// Skipped deletes are not errors.
//
// Uploader accepts multipart uploads, corrects the client filename and
// renames on collision ("manual_1.pdf"). Helper combines the store with the
// scope config, store manager and backend URL collaborators used by the
// admin HTTP module.
package attachment
