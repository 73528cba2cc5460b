// Package soap parses and renders the SOAP envelopes spoken on UPnP
// control endpoints.
//
// ParseCall turns a control payload into a Call: the action element's
// local name, its namespace (the service type) and its arguments as raw
// strings in document order. No type coercion happens here.
//
//	call, err := soap.ParseCall(body)
//	if errors.Is(err, soap.ErrMalformed) {
//	    // bad markup
//	}
//
// BuildResponse and BuildFault render envelopes in the form gateways use:
//
//	<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/"
//	    s:encodingStyle="http://schemas.xmlsoap.org/soap/encoding/">
//	  <s:Body>
//	    <u:GetExternalIPAddressResponse xmlns:u="urn:schemas-upnp-org:service:WANIPConnection:1">
//	      <NewExternalIPAddress>203.0.113.1</NewExternalIPAddress>
//	    </u:GetExternalIPAddressResponse>
//	  </s:Body>
//	</s:Envelope>
//
// Faults always use faultcode s:Client and faultstring UPnPError, with the
// numeric code and description inside a UPnPError detail element.
package soap
