package soap

import (
	"strings"

	"github.com/beevik/etree"
)

// ExtractXPath returns the trimmed text at the given path in an XML
// payload. Attribute paths of the form /a/b/@attr are supported.
// It returns false when the payload does not parse or nothing matches.
//
// Supported XPath syntax is etree's:
//   - /path/to/element - absolute path
//   - //element - find anywhere in document
//   - //*[local-name()='element'] - ignore namespace prefixes
//   - /path/to/element/@attr - attribute value
func ExtractXPath(raw []byte, xpath string) (string, bool) {
	if len(raw) == 0 || xpath == "" {
		return "", false
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return "", false
	}

	if elem := doc.FindElement(xpath); elem != nil {
		return strings.TrimSpace(elem.Text()), true
	}

	if elemPath, attrName, ok := strings.Cut(xpath, "/@"); ok {
		if elem := doc.FindElement(elemPath); elem != nil {
			if attr := elem.SelectAttr(attrName); attr != nil {
				return attr.Value, true
			}
		}
	}
	return "", false
}

// Extract runs ExtractXPath against the call's raw payload.
func (c *Call) Extract(xpath string) (string, bool) {
	return ExtractXPath(c.Raw, xpath)
}
