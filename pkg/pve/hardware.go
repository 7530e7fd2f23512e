package pve

import (
	"context"
	"fmt"
)

// PCIDevice is one entry from a node's PCI device listing.
type PCIDevice struct {
	ID          string `json:"id"`
	Class       string `json:"class,omitempty"`
	Vendor      string `json:"vendor,omitempty"`
	VendorName  string `json:"vendor_name,omitempty"`
	Device      string `json:"device,omitempty"`
	DeviceName  string `json:"device_name,omitempty"`
	IOMMUGroup  int    `json:"iommugroup,omitempty"`
	MDevCapable int    `json:"mdev,omitempty"`
}

// USBDevice is one entry from a node's USB device listing.
type USBDevice struct {
	BusNum       int    `json:"busnum"`
	DevNum       int    `json:"devnum"`
	VendorID     string `json:"vendid,omitempty"`
	ProductID    string `json:"prodid,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Product      string `json:"product,omitempty"`
	Class        int    `json:"class,omitempty"`
	Speed        string `json:"speed,omitempty"`
}

// ListPCIDevices lists the PCI devices on a node.
func (c *Client) ListPCIDevices(ctx context.Context, node string) ([]PCIDevice, error) {
	var devices []PCIDevice
	if err := c.get(ctx, fmt.Sprintf("nodes/%s/hardware/pci", node), &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// ListUSBDevices lists the USB devices on a node.
func (c *Client) ListUSBDevices(ctx context.Context, node string) ([]USBDevice, error) {
	var devices []USBDevice
	if err := c.get(ctx, fmt.Sprintf("nodes/%s/hardware/usb", node), &devices); err != nil {
		return nil, err
	}
	return devices, nil
}
