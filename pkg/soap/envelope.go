package soap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Parse failure sentinels. Use errors.Is against a *ParseError.
var (
	ErrMalformed        = errors.New("malformed XML")
	ErrNotAProtocolCall = errors.New("not a control call")
)

// ParseError describes why a payload could not be turned into a Call.
type ParseError struct {
	Kind   error
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

func malformed(err error) error {
	return &ParseError{Kind: ErrMalformed, Reason: err.Error()}
}

func notACall(format string, args ...any) error {
	return &ParseError{Kind: ErrNotAProtocolCall, Reason: fmt.Sprintf(format, args...)}
}

// ParseCall parses a control payload. The single element inside the
// envelope body is the action; each of its child elements is an argument
// whose text is kept verbatim.
func ParseCall(body []byte) (*Call, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, malformed(err)
	}

	root := doc.Root()
	if root == nil {
		return nil, notACall("empty document")
	}
	if root.Tag != "Envelope" {
		return nil, notACall("root element must be Envelope, got %s", root.Tag)
	}

	var envBody *etree.Element
	for _, child := range root.ChildElements() {
		if child.Tag == "Body" {
			envBody = child
			break
		}
	}
	if envBody == nil {
		return nil, notACall("envelope has no Body")
	}

	children := envBody.ChildElements()
	switch len(children) {
	case 0:
		return nil, notACall("no action element found in Body")
	case 1:
	default:
		return nil, notACall("Body holds %d elements, want 1", len(children))
	}

	actionEl := children[0]
	call := &Call{
		Action:      actionEl.Tag,
		ServiceType: actionEl.NamespaceURI(),
		Raw:         body,
	}
	for _, argEl := range actionEl.ChildElements() {
		call.Args = append(call.Args, Arg{Name: argEl.Tag, Value: argEl.Text()})
	}
	return call, nil
}

// ParseSOAPAction splits a SOAPAction header value of the form
// "serviceType#actionName". Quotes around the value are removed.
func ParseSOAPAction(header string) (serviceType, action string, ok bool) {
	header = strings.Trim(strings.TrimSpace(header), `"`)
	idx := strings.LastIndex(header, "#")
	if idx < 0 {
		return "", "", false
	}
	return header[:idx], header[idx+1:], true
}
