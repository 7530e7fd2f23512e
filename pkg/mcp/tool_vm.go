package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/getproxmoxd/proxmoxd/pkg/pve"
)

func handleListVMs(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	vms, err := s.client.ListVMs(ctx)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(vms)
}

func handleListContainers(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	vms, err := s.client.ListVMs(ctx)
	if err != nil {
		return nil, err
	}
	containers := make([]pve.VMInfo, 0, len(vms))
	for _, vm := range vms {
		if vm.Type == "lxc" {
			containers = append(containers, vm)
		}
	}
	return ToolResultJSON(containers)
}

func handleListTemplates(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return nil, err
	}
	storage := getString(args, "storage", "local")
	content := getString(args, "content", "vztmpl")
	templates, err := s.client.ListStorageContent(ctx, node, storage, content)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(templates)
}

func handleListGuestTemplates(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	templates, err := s.client.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(templates)
}

func handleGetVMStatus(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, vmType, vmid, err := guestArgs(args)
	if err != nil {
		return nil, err
	}
	status, err := s.client.GetVMStatus(ctx, node, vmType, vmid)
	if err != nil {
		return nil, err
	}
	return ToolResultText(string(status)), nil
}

func handleGetVMConfig(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, vmType, vmid, err := guestArgs(args)
	if err != nil {
		return nil, err
	}
	config, err := s.client.GetVMConfig(ctx, node, vmType, vmid)
	if err != nil {
		return nil, err
	}
	return ToolResultText(string(config)), nil
}

func handleUpdateVMConfig(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, vmType, vmid, err := guestArgs(args)
	if err != nil {
		return nil, err
	}
	changes, ok := args["changes"].(map[string]interface{})
	if !ok || len(changes) == 0 {
		return nil, &argError{msg: "Missing changes"}
	}
	if err := s.client.UpdateVMConfig(ctx, node, vmType, vmid, changes); err != nil {
		return nil, err
	}
	return ToolResultText("Config updated."), nil
}

// vmActionHandler builds a handler for one lifecycle action. forcedType pins
// the guest type; empty lets the type argument decide, defaulting to qemu.
func vmActionHandler(action, forcedType string) ToolHandler {
	return func(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
		node, err := requireString(args, "node")
		if err != nil {
			return nil, err
		}
		vmid, err := requireInt(args, "vmid")
		if err != nil {
			return nil, err
		}

		vmType := forcedType
		if vmType == "" {
			vmType, err = guestType(args, "qemu")
			if err != nil {
				return nil, err
			}
		}

		upid, err := s.client.VMAction(ctx, node, vmType, vmid, action)
		if err != nil {
			return nil, err
		}
		return ToolResultTextf("Action '%s' initiated. UPID: %s", action, upid), nil
	}
}

// resetHandler builds the reset_vm / reset_container handler. The guest is
// addressed by ID alone; its node and type are resolved from cluster
// resources and the type is verified before acting.
func resetHandler(expectedType string) ToolHandler {
	idKey := "vm_id"
	if expectedType == "lxc" {
		idKey = "container_id"
	}

	return func(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
		idStr, err := requireString(args, idKey)
		if err != nil {
			return nil, err
		}
		vmid, err := pve.ParseVMID(idStr)
		if err != nil {
			return nil, &argError{msg: fmt.Sprintf("invalid %s %q", idKey, idStr)}
		}

		vm, err := s.client.FindVM(ctx, vmid)
		if err != nil {
			return nil, err
		}
		if vm.Type != expectedType {
			return nil, &argError{msg: fmt.Sprintf("ID %d is not a %s", vmid, expectedType)}
		}

		// LXC has no hard reset; reboot is the closest equivalent.
		action := "reset"
		if expectedType == "lxc" {
			action = "reboot"
		}

		upid, err := s.client.VMAction(ctx, vm.Node, vm.Type, vmid, action)
		if err != nil {
			return nil, err
		}
		return ToolResultTextf("Reset initiated. UPID: %s", upid), nil
	}
}

// createHandler builds the create_vm / create_container handler. Every
// argument besides node is passed through to the create API unchanged.
func createHandler(vmType string) ToolHandler {
	return func(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
		node, err := requireString(args, "node")
		if err != nil {
			return nil, err
		}
		if _, err := requireInt(args, "vmid"); err != nil {
			return nil, err
		}

		params := make(map[string]interface{}, len(args))
		for k, v := range args {
			if k != "node" {
				params[k] = v
			}
		}

		upid, err := s.client.CreateVM(ctx, node, vmType, params)
		if err != nil {
			return nil, err
		}
		return ToolResultTextf("Create %s initiated. UPID: %s", vmType, upid), nil
	}
}

// deleteHandler builds the delete_vm / delete_container handler.
func deleteHandler(vmType string) ToolHandler {
	return func(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
		node, err := requireString(args, "node")
		if err != nil {
			return nil, err
		}
		vmid, err := requireInt(args, "vmid")
		if err != nil {
			return nil, err
		}

		upid, err := s.client.DeleteVM(ctx, node, vmType, vmid)
		if err != nil {
			return nil, err
		}
		return ToolResultTextf("Delete %s initiated. UPID: %s", vmType, upid), nil
	}
}

func handleUpdateContainerResources(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return nil, err
	}
	vmid, err := requireInt(args, "vmid")
	if err != nil {
		return nil, err
	}

	var output []string

	if gb := getInt(args, "disk_gb", 0); gb > 0 {
		disk := getString(args, "disk", "rootfs")
		size := fmt.Sprintf("+%dG", gb)
		upid, err := s.client.ResizeVMDisk(ctx, node, "lxc", vmid, disk, size)
		if err != nil {
			return nil, err
		}
		output = append(output, fmt.Sprintf("Disk %s resize initiated (+%dGB). UPID: %s", disk, gb, upid))
	}

	changes := map[string]interface{}{}
	for _, key := range []string{"cores", "memory", "swap"} {
		if v, ok := args[key]; ok {
			changes[key] = v
		}
	}
	if len(changes) > 0 {
		if err := s.client.UpdateVMConfig(ctx, node, "lxc", vmid, changes); err != nil {
			return nil, err
		}
		output = append(output, "Resource config updated.")
	}

	if len(output) == 0 {
		output = append(output, "No changes requested.")
	}
	return ToolResultText(strings.Join(output, "\n")), nil
}

func handleCloneVM(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, vmType, vmid, err := guestArgs(args)
	if err != nil {
		return nil, err
	}
	newID, err := requireInt(args, "newid")
	if err != nil {
		return nil, err
	}

	upid, err := s.client.CloneVM(ctx, node, vmType, vmid, newID,
		getString(args, "name", ""),
		getString(args, "target", ""),
		optBool(args, "full"),
	)
	if err != nil {
		return nil, err
	}
	return ToolResultTextf("Clone initiated. UPID: %s", upid), nil
}

func handleMigrateVM(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, vmType, vmid, err := guestArgs(args)
	if err != nil {
		return nil, err
	}
	target, err := requireString(args, "target_node")
	if err != nil {
		return nil, err
	}

	upid, err := s.client.MigrateVM(ctx, node, vmType, vmid, target, getBool(args, "online", false))
	if err != nil {
		return nil, err
	}
	return ToolResultTextf("Migration initiated. UPID: %s", upid), nil
}

func handleResizeDisk(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, vmType, vmid, err := guestArgs(args)
	if err != nil {
		return nil, err
	}
	disk, err := requireString(args, "disk")
	if err != nil {
		return nil, err
	}
	size, err := requireString(args, "size")
	if err != nil {
		return nil, err
	}

	upid, err := s.client.ResizeVMDisk(ctx, node, vmType, vmid, disk, size)
	if err != nil {
		return nil, err
	}
	return ToolResultTextf("Disk %s resize to %s initiated. UPID: %s", disk, size, upid), nil
}

func handleGetVMConsole(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, vmType, vmid, err := guestArgs(args)
	if err != nil {
		return nil, err
	}
	ticket, err := s.client.VNCProxy(ctx, node, vmType, vmid)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(ticket)
}

// guestArgs extracts the common node/vmid/type triple, with type defaulting
// to qemu.
func guestArgs(args map[string]interface{}) (node, vmType string, vmid int, err error) {
	node, err = requireString(args, "node")
	if err != nil {
		return "", "", 0, err
	}
	vmid, err = requireInt(args, "vmid")
	if err != nil {
		return "", "", 0, err
	}
	vmType, err = guestType(args, "qemu")
	if err != nil {
		return "", "", 0, err
	}
	return node, vmType, vmid, nil
}
