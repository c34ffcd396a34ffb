package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/conn-castle/pkgmigrate/internal/adb"
	"github.com/conn-castle/pkgmigrate/internal/messages"
)

func newDevicesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.DevicesUse,
		Short: messages.DevicesShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			devices, err := a.client.Devices(cmd.Context())
			if err != nil {
				return err
			}
			if len(devices) == 0 {
				_, _ = fmt.Fprintln(a.out, messages.DevicesNoneAttached)
				return nil
			}
			printDevices(a.out, devices)
			return nil
		},
	}
}

// printDevices renders devices as a table.
func printDevices(out io.Writer, devices []adb.DeviceInfo) {
	table := uitable.New()
	table.MaxColWidth = 50
	table.AddRow(messages.DevicesHeaderSerial, messages.DevicesHeaderState, messages.DevicesHeaderModel)
	for _, d := range devices {
		var state string
		switch d.State {
		case adb.StateDevice:
			state = color.GreenString(d.State)
		case adb.StateUnauthorized:
			state = color.RedString(d.State)
		default:
			state = color.YellowString(d.State)
		}
		table.AddRow(d.Serial.String(), state, d.Model)
	}
	_, _ = fmt.Fprintln(out, table)
}
