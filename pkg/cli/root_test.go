package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"gopkg.in/yaml.v3"

	"github.com/getmockd/mockigd/pkg/action"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"serve", "describe", "operations", "version"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered (err %v)", name, err)
		}
	}
}

func TestRootCmd_HelpFlag(t *testing.T) {
	out, err := runRoot(t, "--help")
	if err != nil {
		t.Fatalf("--help returned error: %v", err)
	}
	if !strings.Contains(out, "mock UPnP Internet Gateway Device") {
		t.Errorf("help output missing description:\n%s", out)
	}
}

func TestRootCmd_UnknownCommand(t *testing.T) {
	if _, err := runRoot(t, "frobnicate"); err == nil {
		t.Error("expected an error for an unknown command")
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := runRoot(t, "version")
	if err != nil {
		t.Fatalf("version returned error: %v", err)
	}
	if !strings.HasPrefix(out, "mockigd "+Version) {
		t.Errorf("version output = %q", out)
	}
}

func TestDescribeCmd_RootDescription(t *testing.T) {
	out, err := runRoot(t, "describe")
	if err != nil {
		t.Fatalf("describe returned error: %v", err)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(out); err != nil {
		t.Fatalf("describe output is not XML: %v", err)
	}
	el := doc.FindElement("//device/deviceType")
	if el == nil || el.Text() != "urn:schemas-upnp-org:device:InternetGatewayDevice:1" {
		t.Errorf("unexpected root device type in:\n%s", out)
	}
}

func TestDescribeCmd_Services(t *testing.T) {
	tests := []struct {
		service string
		wantOp  string
	}{
		{service: "ipconn", wantOp: action.OpAddPortMapping},
		{service: "COMMON", wantOp: action.OpGetTotalBytesSent},
		{service: action.ServiceWANIPConnection, wantOp: action.OpGetExternalIPAddress},
	}
	for _, tt := range tests {
		t.Run(tt.service, func(t *testing.T) {
			out, err := runRoot(t, "describe", "--service", tt.service)
			if err != nil {
				t.Fatalf("describe returned error: %v", err)
			}
			if !strings.Contains(out, "<name>"+tt.wantOp+"</name>") {
				t.Errorf("SCPD for %s does not list %s:\n%s", tt.service, tt.wantOp, out)
			}
		})
	}
}

func TestDescribeCmd_UnknownService(t *testing.T) {
	if _, err := runRoot(t, "describe", "--service", "Layer3Forwarding"); err == nil {
		t.Error("expected an error for an unknown service")
	}
}

func TestOperationsCmd_Text(t *testing.T) {
	out, err := runRoot(t, "operations")
	if err != nil {
		t.Fatalf("operations returned error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(action.Operations())+1 {
		t.Fatalf("got %d lines, want header plus %d operations:\n%s", len(lines), len(action.Operations()), out)
	}
	if !strings.HasPrefix(lines[0], "OPERATION") {
		t.Errorf("missing header: %q", lines[0])
	}
	if !strings.Contains(out, "GetTotalBytesSent") || !strings.Contains(out, "common") {
		t.Errorf("common interface operations missing:\n%s", out)
	}
}

func TestOperationsCmd_Structured(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		out, err := runRoot(t, "ops", "-o", "json")
		if err != nil {
			t.Fatalf("operations returned error: %v", err)
		}
		var ops []operationInfo
		if err := json.Unmarshal([]byte(out), &ops); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(ops) != len(action.Operations()) {
			t.Errorf("got %d operations, want %d", len(ops), len(action.Operations()))
		}
		for _, op := range ops {
			if op.Name == action.OpAddPortMapping && len(op.In) != 8 {
				t.Errorf("AddPortMapping lists %d inputs, want 8", len(op.In))
			}
		}
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := runRoot(t, "operations", "--format", "yaml")
		if err != nil {
			t.Fatalf("operations returned error: %v", err)
		}
		var ops []operationInfo
		if err := yaml.Unmarshal([]byte(out), &ops); err != nil {
			t.Fatalf("invalid YAML: %v", err)
		}
		if len(ops) == 0 || ops[0].Service == "" {
			t.Errorf("unexpected YAML output:\n%s", out)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if _, err := runRoot(t, "operations", "-o", "xml"); err == nil {
			t.Error("expected an error for an unknown format")
		}
	})
}
