// Package key derives cache keys for compiled template artifacts.
//
// A key is built from two inputs: the logical template name handed to the
// loader, and an identity string that distinguishes one compiled form of the
// template from another (typically a versioned class name). The name provides
// a human-readable, namespaced stem and the identity contributes a SHA-256
// digest, so two compiled forms of the same template never share a key:
//
//	d := key.New(key.WithMarkers("themes/"), key.WithSourceExtension("tpl"))
//	k := d.Derive("/var/www/themes/custom/page.tpl", "PageTemplateV2")
//	// k == "custom/page_<64 hex chars>.tplc"
//
// Keys are relative slash-separated paths. Traversal segments and characters
// that are illegal on common filesystems never appear in a derived key.
//
// Derive is pure and never fails; unusual input degrades to a shorter key
// rather than an error.
package key
