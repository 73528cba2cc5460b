package soap

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Fault is a UPnP error carried inside a SOAP fault.
type Fault struct {
	Code        int    `json:"errorCode" yaml:"errorCode"`
	Description string `json:"errorDescription" yaml:"errorDescription"`
}

func (f *Fault) Error() string {
	return fmt.Sprintf("UPnPError %d: %s", f.Code, f.Description)
}

// newEnvelope creates an envelope document and returns it with its Body.
func newEnvelope() (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0"`)
	env := doc.CreateElement("s:Envelope")
	env.CreateAttr("xmlns:s", EnvelopeNamespace)
	env.CreateAttr("s:encodingStyle", EncodingStyle)
	return doc, env.CreateElement("s:Body")
}

// BuildResponse renders a successful action response. Arguments are
// emitted in the order given.
func BuildResponse(action, serviceType string, args Args) ([]byte, error) {
	doc, body := newEnvelope()
	resp := body.CreateElement("u:" + action + "Response")
	resp.CreateAttr("xmlns:u", serviceType)
	for _, arg := range args {
		resp.CreateElement(arg.Name).SetText(arg.Value)
	}
	return doc.WriteToBytes()
}

// BuildFault renders a UPnP fault envelope. Code and description are
// written verbatim.
func BuildFault(f Fault) ([]byte, error) {
	doc, body := newEnvelope()
	fault := body.CreateElement("s:Fault")
	fault.CreateElement("faultcode").SetText("s:Client")
	fault.CreateElement("faultstring").SetText("UPnPError")
	upnpErr := fault.CreateElement("detail").CreateElement("UPnPError")
	upnpErr.CreateAttr("xmlns", ControlNamespace)
	upnpErr.CreateElement("errorCode").SetText(strconv.Itoa(f.Code))
	upnpErr.CreateElement("errorDescription").SetText(f.Description)
	return doc.WriteToBytes()
}

// ParseFault extracts the UPnP error from a fault envelope.
func ParseFault(body []byte) (*Fault, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, malformed(err)
	}
	codeEl := doc.FindElement("//UPnPError/errorCode")
	if codeEl == nil {
		return nil, errors.New("no UPnPError in fault")
	}
	code, err := strconv.Atoi(strings.TrimSpace(codeEl.Text()))
	if err != nil {
		return nil, fmt.Errorf("invalid errorCode %q: %w", codeEl.Text(), err)
	}
	f := &Fault{Code: code}
	if descEl := doc.FindElement("//UPnPError/errorDescription"); descEl != nil {
		f.Description = descEl.Text()
	}
	return f, nil
}

// ParseResponse extracts the output arguments of an action response
// envelope, in document order.
func ParseResponse(body []byte) (string, Args, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return "", nil, malformed(err)
	}
	envBody := doc.FindElement("//*[local-name()='Body']")
	if envBody == nil {
		return "", nil, notACall("envelope has no Body")
	}
	children := envBody.ChildElements()
	if len(children) != 1 {
		return "", nil, notACall("Body holds %d elements, want 1", len(children))
	}
	resp := children[0]
	if resp.Tag == "Fault" {
		f, err := ParseFault(body)
		if err != nil {
			return "", nil, err
		}
		return "", nil, f
	}
	var args Args
	for _, el := range resp.ChildElements() {
		args = append(args, Arg{Name: el.Tag, Value: el.Text()})
	}
	return strings.TrimSuffix(resp.Tag, "Response"), args, nil
}
