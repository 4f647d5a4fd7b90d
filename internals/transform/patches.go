package transform

import (
	"strings"
)

var signatureSuffixes = []string{".SF", ".RSA", ".DSA", ".EC"}

// StripSignatures removes jar signature files from META-INF
func StripSignatures() Patch {
	return Patch{
		Name: "strip-signatures",
		Apply: func(a *Archive) error {
			for _, name := range a.Entries() {
				if !strings.HasPrefix(name, "META-INF/") {
					continue
				}
				for _, suffix := range signatureSuffixes {
					if strings.HasSuffix(strings.ToUpper(name), suffix) {
						a.Remove(name)
						break
					}
				}
			}
			return nil
		},
	}
}

// SetMainClass writes a manifest with the given Main-Class
func SetMainClass(class string) Patch {
	return Patch{
		Name: "set-main-class",
		Apply: func(a *Archive) error {
			manifest := "Manifest-Version: 1.0\r\nMain-Class: " + class + "\r\n\r\n"
			if err := a.Mkdir("META-INF"); err != nil {
				return err
			}
			return a.WriteFile("META-INF/MANIFEST.MF", []byte(manifest))
		},
	}
}

// RemovePrefixes removes all entries starting with one of the prefixes
func RemovePrefixes(prefixes ...string) Patch {
	return Patch{
		Name: "remove-prefixes",
		Apply: func(a *Archive) error {
			for _, name := range a.Entries() {
				for _, prefix := range prefixes {
					if strings.HasPrefix(name, strings.TrimPrefix(prefix, "/")) {
						a.Remove(name)
						break
					}
				}
			}
			return nil
		},
	}
}
