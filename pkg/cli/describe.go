package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockigd/internal/id"
	"github.com/getmockd/mockigd/pkg/action"
	"github.com/getmockd/mockigd/pkg/config"
	"github.com/getmockd/mockigd/pkg/engine"
)

// serviceAliases maps the short names accepted by describe to service
// types.
var serviceAliases = map[string]string{
	"ipconn": action.ServiceWANIPConnection,
	"common": action.ServiceWANCommonInterfaceConfig,
}

func newDescribeCmd() *cobra.Command {
	var service string

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the device or a service description document",
		Long: `Print the XML the gateway serves, without starting it.

With no flags the root device description is printed. --service prints the
service control protocol description (SCPD) for one service, by short name
(ipconn, common) or full service type.`,
		Example: `  mockigd describe
  mockigd describe --service ipconn`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if service == "" {
				data, err = engine.BuildRootDescription(engine.DeviceInfo{
					FriendlyName: config.DefaultFriendlyName,
					Manufacturer: config.DefaultManufacturer,
					ModelName:    config.DefaultModelName,
					UDN:          id.UDN(),
				})
			} else {
				serviceType, ok := serviceAliases[strings.ToLower(service)]
				if !ok {
					serviceType = service
				}
				data, err = engine.BuildSCPD(serviceType)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().StringVarP(&service, "service", "s", "", "Service to describe (ipconn, common, or a service type)")
	return cmd
}
