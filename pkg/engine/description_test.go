package engine

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mockigd/pkg/action"
)

func readDoc(t *testing.T, data []byte) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))
	return doc
}

func TestBuildRootDescription(t *testing.T) {
	data, err := BuildRootDescription(DeviceInfo{
		FriendlyName: "Mock IGD",
		Manufacturer: "mockigd",
		ModelName:    "Mock Internet Gateway Device",
		UDN:          "uuid:root",
	})
	require.NoError(t, err)
	doc := readDoc(t, data)

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "root", root.Tag)
	assert.Equal(t, deviceNamespace, root.SelectAttrValue("xmlns", ""))
	assert.Equal(t, "1", root.FindElement("specVersion/major").Text())

	igd := root.FindElement("device")
	require.NotNil(t, igd)
	assert.Equal(t, DeviceInternetGateway, igd.FindElement("deviceType").Text())
	assert.Equal(t, "Mock IGD", igd.FindElement("friendlyName").Text())
	assert.Equal(t, "mockigd", igd.FindElement("manufacturer").Text())
	assert.Equal(t, "Mock Internet Gateway Device", igd.FindElement("modelName").Text())
	assert.Equal(t, "uuid:root", igd.FindElement("UDN").Text())

	wan := igd.FindElement("deviceList/device")
	require.NotNil(t, wan)
	assert.Equal(t, DeviceWAN, wan.FindElement("deviceType").Text())
	common := wan.FindElement("serviceList/service")
	require.NotNil(t, common)
	assert.Equal(t, action.ServiceWANCommonInterfaceConfig, common.FindElement("serviceType").Text())
	assert.Equal(t, PathWANCommonIFCControl, common.FindElement("controlURL").Text())
	assert.Equal(t, PathWANCommonIFCSCPD, common.FindElement("SCPDURL").Text())

	conn := wan.FindElement("deviceList/device")
	require.NotNil(t, conn)
	assert.Equal(t, DeviceWANConnection, conn.FindElement("deviceType").Text())
	ipConn := conn.FindElement("serviceList/service")
	require.NotNil(t, ipConn)
	assert.Equal(t, action.ServiceWANIPConnection, ipConn.FindElement("serviceType").Text())
	assert.Equal(t, "urn:upnp-org:serviceId:WANIPConn1", ipConn.FindElement("serviceId").Text())
	assert.Equal(t, PathWANIPConnectionControl, ipConn.FindElement("controlURL").Text())
	assert.Equal(t, PathWANIPConnectionEvent, ipConn.FindElement("eventSubURL").Text())

	udns := map[string]bool{}
	for _, el := range doc.FindElements("//UDN") {
		udns[el.Text()] = true
	}
	assert.Len(t, udns, 3, "every device has its own UDN")
}

func TestBuildSCPD_ListsCatalogOperations(t *testing.T) {
	for _, service := range []string{action.ServiceWANIPConnection, action.ServiceWANCommonInterfaceConfig} {
		t.Run(service, func(t *testing.T) {
			data, err := BuildSCPD(service)
			require.NoError(t, err)
			doc := readDoc(t, data)

			var names []string
			for _, el := range doc.FindElements("//actionList/action/name") {
				names = append(names, el.Text())
			}
			var want []string
			for _, op := range action.ServiceOperations(service) {
				want = append(want, op.Name)
			}
			assert.Equal(t, want, names)
		})
	}
}

func TestBuildSCPD_ArgumentsAndStateVariables(t *testing.T) {
	data, err := BuildSCPD(action.ServiceWANIPConnection)
	require.NoError(t, err)
	doc := readDoc(t, data)

	var add *etree.Element
	for _, el := range doc.FindElements("//actionList/action") {
		if el.FindElement("name").Text() == action.OpAddPortMapping {
			add = el
		}
	}
	require.NotNil(t, add)
	args := add.FindElements("argumentList/argument")
	require.Len(t, args, 8)
	assert.Equal(t, action.ArgRemoteHost, args[0].FindElement("name").Text())
	assert.Equal(t, "in", args[0].FindElement("direction").Text())
	assert.Equal(t, "PortMappingLeaseDuration", args[7].FindElement("relatedStateVariable").Text())

	types := map[string]string{}
	for _, sv := range doc.FindElements("//serviceStateTable/stateVariable") {
		assert.Equal(t, "no", sv.SelectAttrValue("sendEvents", ""))
		name := sv.FindElement("name").Text()
		_, dup := types[name]
		assert.False(t, dup, "state variable %s listed twice", name)
		types[name] = sv.FindElement("dataType").Text()
	}
	assert.Equal(t, "ui2", types["ExternalPort"])
	assert.Equal(t, "boolean", types["PortMappingEnabled"])
	assert.Equal(t, "ui4", types["Uptime"])
	assert.Equal(t, "string", types["ExternalIPAddress"])
}

func TestBuildSCPD_UnknownService(t *testing.T) {
	_, err := BuildSCPD("urn:schemas-upnp-org:service:Layer3Forwarding:1")
	assert.Error(t, err)
}
