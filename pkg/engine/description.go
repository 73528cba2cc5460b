// Device and service description documents.

package engine

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/getmockd/mockigd/internal/id"
	"github.com/getmockd/mockigd/pkg/action"
)

// HTTP paths served by the gateway.
const (
	PathRootDescription        = "/rootDesc.xml"
	PathWANIPConnectionSCPD    = "/WANIPCn.xml"
	PathWANCommonIFCSCPD       = "/WANCommonIFC1.xml"
	PathWANIPConnectionControl = "/ctl/IPConn"
	PathWANCommonIFCControl    = "/ctl/WANCommonIFC1"
	PathWANIPConnectionEvent   = "/evt/IPConn"
	PathWANCommonIFCEvent      = "/evt/WANCommonIFC1"
)

// Device types in the description tree.
const (
	DeviceInternetGateway   = "urn:schemas-upnp-org:device:InternetGatewayDevice:1"
	DeviceWAN               = "urn:schemas-upnp-org:device:WANDevice:1"
	DeviceWANConnection     = "urn:schemas-upnp-org:device:WANConnectionDevice:1"
	deviceNamespace         = "urn:schemas-upnp-org:device-1-0"
	serviceNamespace        = "urn:schemas-upnp-org:service-1-0"
	serviceIDWANIPConn      = "urn:upnp-org:serviceId:WANIPConn1"
	serviceIDWANCommonIFC   = "urn:upnp-org:serviceId:WANCommonIFC1"
	subDeviceNameWAN        = "WANDevice"
	subDeviceNameConnection = "WANConnectionDevice"
)

// DeviceInfo is the identity advertised in the root description.
type DeviceInfo struct {
	FriendlyName string
	Manufacturer string
	ModelName    string
	UDN          string
}

// service describes one entry of a device's serviceList.
type service struct {
	Type       string
	ID         string
	SCPDURL    string
	ControlURL string
	EventURL   string
}

var (
	wanIPConnection = service{
		Type:       action.ServiceWANIPConnection,
		ID:         serviceIDWANIPConn,
		SCPDURL:    PathWANIPConnectionSCPD,
		ControlURL: PathWANIPConnectionControl,
		EventURL:   PathWANIPConnectionEvent,
	}
	wanCommonIFC = service{
		Type:       action.ServiceWANCommonInterfaceConfig,
		ID:         serviceIDWANCommonIFC,
		SCPDURL:    PathWANCommonIFCSCPD,
		ControlURL: PathWANCommonIFCControl,
		EventURL:   PathWANCommonIFCEvent,
	}
)

func createSpecVersion(parent *etree.Element) {
	sv := parent.CreateElement("specVersion")
	sv.CreateElement("major").SetText("1")
	sv.CreateElement("minor").SetText("0")
}

func createDevice(parent *etree.Element, deviceType, friendlyName, udn string) *etree.Element {
	dev := parent.CreateElement("device")
	dev.CreateElement("deviceType").SetText(deviceType)
	dev.CreateElement("friendlyName").SetText(friendlyName)
	dev.CreateElement("UDN").SetText(udn)
	return dev
}

func createServiceList(dev *etree.Element, services ...service) {
	list := dev.CreateElement("serviceList")
	for _, s := range services {
		el := list.CreateElement("service")
		el.CreateElement("serviceType").SetText(s.Type)
		el.CreateElement("serviceId").SetText(s.ID)
		el.CreateElement("SCPDURL").SetText(s.SCPDURL)
		el.CreateElement("controlURL").SetText(s.ControlURL)
		el.CreateElement("eventSubURL").SetText(s.EventURL)
	}
}

// BuildRootDescription renders the InternetGatewayDevice description:
// the root device holds a WANDevice with WANCommonInterfaceConfig, which
// holds a WANConnectionDevice with WANIPConnection.
func BuildRootDescription(info DeviceInfo) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0"`)
	root := doc.CreateElement("root")
	root.CreateAttr("xmlns", deviceNamespace)
	createSpecVersion(root)

	igd := createDevice(root, DeviceInternetGateway, info.FriendlyName, info.UDN)
	igd.CreateElement("manufacturer").SetText(info.Manufacturer)
	igd.CreateElement("modelName").SetText(info.ModelName)

	wan := createDevice(igd.CreateElement("deviceList"), DeviceWAN, subDeviceNameWAN, id.UDN())
	conn := createDevice(wan.CreateElement("deviceList"), DeviceWANConnection, subDeviceNameConnection, id.UDN())
	createServiceList(conn, wanIPConnection)
	createServiceList(wan, wanCommonIFC)

	doc.Indent(2)
	return doc.WriteToBytes()
}

// BuildSCPD renders the service control protocol description of a service
// type from the operation catalog.
func BuildSCPD(serviceType string) ([]byte, error) {
	ops := action.ServiceOperations(serviceType)
	if len(ops) == 0 {
		return nil, fmt.Errorf("no operations for service %q", serviceType)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0"`)
	scpd := doc.CreateElement("scpd")
	scpd.CreateAttr("xmlns", serviceNamespace)
	createSpecVersion(scpd)

	var (
		seen      = make(map[string]bool)
		variables []action.Argument
	)
	collect := func(a action.Argument) {
		if !seen[a.StateVariable] {
			seen[a.StateVariable] = true
			variables = append(variables, a)
		}
	}

	actionList := scpd.CreateElement("actionList")
	for _, op := range ops {
		el := actionList.CreateElement("action")
		el.CreateElement("name").SetText(op.Name)
		args := el.CreateElement("argumentList")
		for _, a := range op.In {
			createArgument(args, a, "in")
			collect(a)
		}
		for _, a := range op.Out {
			createArgument(args, a, "out")
			collect(a)
		}
	}

	table := scpd.CreateElement("serviceStateTable")
	for _, v := range variables {
		sv := table.CreateElement("stateVariable")
		sv.CreateAttr("sendEvents", "no")
		sv.CreateElement("name").SetText(v.StateVariable)
		sv.CreateElement("dataType").SetText(string(v.Type))
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

func createArgument(list *etree.Element, a action.Argument, direction string) {
	el := list.CreateElement("argument")
	el.CreateElement("name").SetText(a.Name)
	el.CreateElement("direction").SetText(direction)
	el.CreateElement("relatedStateVariable").SetText(a.StateVariable)
}
