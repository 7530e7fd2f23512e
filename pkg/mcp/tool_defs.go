package mcp

// Schema construction helpers. Definitions below stay readable by building
// the repetitive node/vmid/type property blocks once.

func objSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func strProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": desc}
}

func intProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": desc}
}

func boolProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "boolean", "description": desc}
}

// guestProps is the node/vmid/type triple shared by most guest tools.
func guestProps(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"node": strProp("Node name hosting the guest"),
		"vmid": intProp("Guest VMID"),
		"type": strProp("Guest type: qemu or lxc (default qemu)"),
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

// allToolDefinitions returns the full static catalog in display order.
func allToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		// Bootstrap
		defLoadAllTools,

		// Cluster / Nodes
		defListNodes,
		defGetNodeStatus,
		defGetClusterStatus,
		defGetClusterLog,
		defListClusterResources,
		defListHAResources,

		// Guests
		defListVMs,
		defListContainers,
		defListTemplates,
		defListGuestTemplates,
		defGetVMStatus,
		defGetVMConfig,
		defUpdateVMConfig,
		defStartVM,
		defStartContainer,
		defStopVM,
		defStopContainer,
		defShutdownVM,
		defShutdownContainer,
		defRebootVM,
		defResetVM,
		defResetContainer,
		defCreateVM,
		defCreateContainer,
		defDeleteVM,
		defDeleteContainer,
		defUpdateContainerResources,
		defCloneVM,
		defMigrateVM,
		defResizeDisk,
		defGetVMConsole,

		// Snapshots
		defListSnapshots,
		defSnapshotVM,
		defRollbackVM,
		defDeleteSnapshot,

		// Storage
		defListStorage,
		defListStoragePools,
		defListStorageContent,
		defDownloadURL,

		// Tasks
		defGetTaskStatus,
		defGetTaskLog,
		defListTasks,
		defWaitForTask,

		// Firewall
		defListFirewallRules,
		defAddFirewallRule,
		defDeleteFirewallRule,

		// Replication
		defListReplicationJobs,
		defCreateReplicationJob,
		defUpdateReplicationJob,
		defDeleteReplicationJob,

		// Access / Pools
		defListUsers,
		defCreateUser,
		defDeleteUser,
		defListRoles,
		defCreateRole,
		defListACL,
		defUpdateACL,
		defListPools,
		defCreatePool,
		defGetPool,
		defUpdatePool,
		defDeletePool,

		// Guest Agent
		defAgentPing,
		defAgentExec,
		defAgentExecStatus,
		defAgentFileRead,
		defAgentFileWrite,
		defAgentNetworkInterfaces,

		// Node System
		defListNetworkInterfaces,
		defGetNodeRRDData,
		defListServices,
		defManageService,
		defListAptUpdates,
		defListAptVersions,
		defRunAptUpdate,
		defGetPCIDevices,
		defGetUSBDevices,
		defGetSubscription,
		defSetSubscription,
		defUpdateSubscription,
	}
}

// registerBuiltinTools wires every definition to its handler, preserving
// definition order in tools/list.
func (r *ToolRegistry) registerBuiltinTools() {
	handlers := map[string]ToolHandler{
		"load_all_tools": handleLoadAllTools,

		"list_nodes":             handleListNodes,
		"get_node_status":        handleGetNodeStatus,
		"get_cluster_status":     handleGetClusterStatus,
		"get_cluster_log":        handleGetClusterLog,
		"list_cluster_resources": handleListClusterResources,
		"list_ha_resources":      handleListHAResources,

		"list_vms":                   handleListVMs,
		"list_containers":            handleListContainers,
		"list_templates":             handleListTemplates,
		"list_guest_templates":       handleListGuestTemplates,
		"get_vm_status":              handleGetVMStatus,
		"get_vm_config":              handleGetVMConfig,
		"update_vm_config":           handleUpdateVMConfig,
		"start_vm":                   vmActionHandler("start", ""),
		"start_container":            vmActionHandler("start", "lxc"),
		"stop_vm":                    vmActionHandler("stop", ""),
		"stop_container":             vmActionHandler("stop", "lxc"),
		"shutdown_vm":                vmActionHandler("shutdown", ""),
		"shutdown_container":         vmActionHandler("shutdown", "lxc"),
		"reboot_vm":                  vmActionHandler("reboot", ""),
		"reset_vm":                   resetHandler("qemu"),
		"reset_container":            resetHandler("lxc"),
		"create_vm":                  createHandler("qemu"),
		"create_container":           createHandler("lxc"),
		"delete_vm":                  deleteHandler("qemu"),
		"delete_container":           deleteHandler("lxc"),
		"update_container_resources": handleUpdateContainerResources,
		"clone_vm":                   handleCloneVM,
		"migrate_vm":                 handleMigrateVM,
		"resize_disk":                handleResizeDisk,
		"get_vm_console":             handleGetVMConsole,

		"list_snapshots":  handleListSnapshots,
		"snapshot_vm":     handleSnapshotVM,
		"rollback_vm":     handleRollbackVM,
		"delete_snapshot": handleDeleteSnapshot,

		"list_storage":         handleListStorage,
		"list_storage_pools":   handleListStoragePools,
		"list_storage_content": handleListStorageContent,
		"download_url":         handleDownloadURL,

		"get_task_status": handleGetTaskStatus,
		"get_task_log":    handleGetTaskLog,
		"list_tasks":      handleListTasks,
		"wait_for_task":   handleWaitForTask,

		"list_firewall_rules":  handleListFirewallRules,
		"add_firewall_rule":    handleAddFirewallRule,
		"delete_firewall_rule": handleDeleteFirewallRule,

		"list_replication_jobs":  handleListReplicationJobs,
		"create_replication_job": handleCreateReplicationJob,
		"update_replication_job": handleUpdateReplicationJob,
		"delete_replication_job": handleDeleteReplicationJob,

		"list_users":  handleListUsers,
		"create_user": handleCreateUser,
		"delete_user": handleDeleteUser,
		"list_roles":  handleListRoles,
		"create_role": handleCreateRole,
		"list_acl":    handleListACL,
		"update_acl":  handleUpdateACL,
		"list_pools":  handleListPools,
		"create_pool": handleCreatePool,
		"get_pool":    handleGetPool,
		"update_pool": handleUpdatePool,
		"delete_pool": handleDeletePool,

		"agent_ping":               handleAgentPing,
		"agent_exec":               handleAgentExec,
		"agent_exec_status":        handleAgentExecStatus,
		"agent_file_read":          handleAgentFileRead,
		"agent_file_write":         handleAgentFileWrite,
		"agent_network_interfaces": handleAgentNetworkInterfaces,

		"list_network_interfaces": handleListNetworkInterfaces,
		"get_node_rrddata":        handleGetNodeRRDData,
		"list_services":           handleListServices,
		"manage_service":          handleManageService,
		"list_apt_updates":        handleListAptUpdates,
		"list_apt_versions":       handleListAptVersions,
		"run_apt_update":          handleRunAptUpdate,
		"get_pci_devices":         handleGetPCIDevices,
		"get_usb_devices":         handleGetUSBDevices,
		"get_subscription":        handleGetSubscription,
		"set_subscription":        handleSetSubscription,
		"update_subscription":     handleUpdateSubscription,
	}

	for _, def := range allToolDefinitions() {
		handler, ok := handlers[def.Name]
		if !ok {
			continue
		}
		r.Register(&Tool{Definition: def, Handler: handler})
	}
}

// Bootstrap

var defLoadAllTools = ToolDefinition{
	Name:        "load_all_tools",
	Description: "Load the full tool catalog. In lazy mode only a minimal bootstrap set is advertised until this tool is called; calling it again is a no-op.",
	InputSchema: objSchema(map[string]interface{}{}),
}

// Cluster / Nodes

var defListNodes = ToolDefinition{
	Name:        "list_nodes",
	Description: "List all nodes in the Proxmox cluster with status, CPU, and memory utilization.",
	InputSchema: objSchema(map[string]interface{}{}),
}

var defGetNodeStatus = ToolDefinition{
	Name:        "get_node_status",
	Description: "Get detailed status for a single node (kernel, load, memory, rootfs).",
	InputSchema: objSchema(map[string]interface{}{
		"node": strProp("Node name"),
	}, "node"),
}

var defGetClusterStatus = ToolDefinition{
	Name:        "get_cluster_status",
	Description: "Get cluster membership and quorum state.",
	InputSchema: objSchema(map[string]interface{}{}),
}

var defGetClusterLog = ToolDefinition{
	Name:        "get_cluster_log",
	Description: "Get recent cluster-wide log entries.",
	InputSchema: objSchema(map[string]interface{}{
		"max": intProp("Maximum entries to return (default 50)"),
	}),
}

var defListClusterResources = ToolDefinition{
	Name:        "list_cluster_resources",
	Description: "List cluster resources (guests, nodes, storage), optionally filtered by type.",
	InputSchema: objSchema(map[string]interface{}{
		"type": strProp("Resource type filter: vm, node, or storage"),
	}),
}

var defListHAResources = ToolDefinition{
	Name:        "list_ha_resources",
	Description: "List high-availability managed resources and their requested states.",
	InputSchema: objSchema(map[string]interface{}{}),
}

// Guests

var defListVMs = ToolDefinition{
	Name:        "list_vms",
	Description: "List all guests (QEMU VMs and LXC containers) across the cluster with VMID, name, status, node, and type.",
	InputSchema: objSchema(map[string]interface{}{}),
}

var defListContainers = ToolDefinition{
	Name:        "list_containers",
	Description: "List all LXC containers across the cluster.",
	InputSchema: objSchema(map[string]interface{}{}),
}

var defListTemplates = ToolDefinition{
	Name:        "list_templates",
	Description: "List container templates available on a storage.",
	InputSchema: objSchema(map[string]interface{}{
		"node":    strProp("Node name"),
		"storage": strProp("Storage name (default: local)"),
		"content": strProp("Content type (default: vztmpl)"),
	}, "node"),
}

var defListGuestTemplates = ToolDefinition{
	Name:        "list_guest_templates",
	Description: "List guests marked as templates, usable as clone sources.",
	InputSchema: objSchema(map[string]interface{}{}),
}

var defGetVMStatus = ToolDefinition{
	Name:        "get_vm_status",
	Description: "Get the current runtime status of a guest (state, uptime, CPU, memory).",
	InputSchema: objSchema(guestProps(nil), "node", "vmid"),
}

var defGetVMConfig = ToolDefinition{
	Name:        "get_vm_config",
	Description: "Get a guest's configuration (cores, memory, disks, network devices).",
	InputSchema: objSchema(guestProps(nil), "node", "vmid"),
}

var defUpdateVMConfig = ToolDefinition{
	Name:        "update_vm_config",
	Description: "Update a guest's configuration. Changes are passed through to the Proxmox config schema (e.g. cores, memory, onboot).",
	InputSchema: objSchema(guestProps(map[string]interface{}{
		"changes": map[string]interface{}{
			"type":        "object",
			"description": "Config keys and values to apply",
		},
	}), "node", "vmid", "changes"),
}

var defStartVM = ToolDefinition{
	Name:        "start_vm",
	Description: "Start a VM. Returns the UPID of the start task.",
	InputSchema: objSchema(guestProps(nil), "node", "vmid"),
}

var defStartContainer = ToolDefinition{
	Name:        "start_container",
	Description: "Start an LXC container. Returns the UPID of the start task.",
	InputSchema: objSchema(map[string]interface{}{
		"node": strProp("Node name hosting the container"),
		"vmid": intProp("Container VMID"),
	}, "node", "vmid"),
}

var defStopVM = ToolDefinition{
	Name:        "stop_vm",
	Description: "Hard-stop a VM (like pulling the power). Returns the UPID of the stop task.",
	InputSchema: objSchema(guestProps(nil), "node", "vmid"),
}

var defStopContainer = ToolDefinition{
	Name:        "stop_container",
	Description: "Hard-stop an LXC container. Returns the UPID of the stop task.",
	InputSchema: objSchema(map[string]interface{}{
		"node": strProp("Node name hosting the container"),
		"vmid": intProp("Container VMID"),
	}, "node", "vmid"),
}

var defShutdownVM = ToolDefinition{
	Name:        "shutdown_vm",
	Description: "Gracefully shut down a VM via ACPI. Returns the UPID of the shutdown task.",
	InputSchema: objSchema(guestProps(nil), "node", "vmid"),
}

var defShutdownContainer = ToolDefinition{
	Name:        "shutdown_container",
	Description: "Gracefully shut down an LXC container. Returns the UPID of the shutdown task.",
	InputSchema: objSchema(map[string]interface{}{
		"node": strProp("Node name hosting the container"),
		"vmid": intProp("Container VMID"),
	}, "node", "vmid"),
}

var defRebootVM = ToolDefinition{
	Name:        "reboot_vm",
	Description: "Reboot a guest (shutdown then start). Returns the UPID of the reboot task.",
	InputSchema: objSchema(guestProps(nil), "node", "vmid"),
}

var defResetVM = ToolDefinition{
	Name:        "reset_vm",
	Description: "Hard-reset a VM by ID. The VM's node and type are resolved automatically from cluster resources.",
	InputSchema: objSchema(map[string]interface{}{
		"vm_id": strProp("VMID of the VM to reset, as a string"),
	}, "vm_id"),
}

var defResetContainer = ToolDefinition{
	Name:        "reset_container",
	Description: "Reboot an LXC container by ID. The container's node and type are resolved automatically from cluster resources.",
	InputSchema: objSchema(map[string]interface{}{
		"container_id": strProp("VMID of the container to reboot, as a string"),
	}, "container_id"),
}

var defCreateVM = ToolDefinition{
	Name:        "create_vm",
	Description: "Create a new QEMU VM on a node. All properties besides node are passed through to the Proxmox create API (vmid, name, cores, memory, net0, ide2, ...). Returns the UPID of the create task.",
	InputSchema: objSchema(map[string]interface{}{
		"node":   strProp("Node to create the VM on"),
		"vmid":   intProp("VMID for the new VM"),
		"name":   strProp("VM name"),
		"cores":  intProp("CPU cores"),
		"memory": intProp("Memory in MB"),
	}, "node", "vmid"),
}

var defCreateContainer = ToolDefinition{
	Name:        "create_container",
	Description: "Create a new LXC container on a node. All properties besides node are passed through to the Proxmox create API (vmid, ostemplate, hostname, cores, memory, rootfs, ...). Returns the UPID of the create task.",
	InputSchema: objSchema(map[string]interface{}{
		"node":       strProp("Node to create the container on"),
		"vmid":       intProp("VMID for the new container"),
		"ostemplate": strProp("OS template volume ID (e.g. local:vztmpl/debian-12-standard_12.2-1_amd64.tar.zst)"),
		"hostname":   strProp("Container hostname"),
		"cores":      intProp("CPU cores"),
		"memory":     intProp("Memory in MB"),
	}, "node", "vmid"),
}

var defDeleteVM = ToolDefinition{
	Name:        "delete_vm",
	Description: "Destroy a QEMU VM and its disks. Returns the UPID of the removal task.",
	InputSchema: objSchema(map[string]interface{}{
		"node": strProp("Node name hosting the VM"),
		"vmid": intProp("VMID of the VM to destroy"),
	}, "node", "vmid"),
}

var defDeleteContainer = ToolDefinition{
	Name:        "delete_container",
	Description: "Destroy an LXC container and its disks. Returns the UPID of the removal task.",
	InputSchema: objSchema(map[string]interface{}{
		"node": strProp("Node name hosting the container"),
		"vmid": intProp("VMID of the container to destroy"),
	}, "node", "vmid"),
}

var defUpdateContainerResources = ToolDefinition{
	Name:        "update_container_resources",
	Description: "Resize a container's disk and/or update its cores, memory, or swap in one call.",
	InputSchema: objSchema(map[string]interface{}{
		"node":    strProp("Node name hosting the container"),
		"vmid":    intProp("Container VMID"),
		"disk_gb": intProp("Gigabytes to grow the disk by"),
		"disk":    strProp("Disk to grow (default rootfs)"),
		"cores":   intProp("New CPU core count"),
		"memory":  intProp("New memory in MB"),
		"swap":    intProp("New swap in MB"),
	}, "node", "vmid"),
}

var defCloneVM = ToolDefinition{
	Name:        "clone_vm",
	Description: "Clone a guest to a new VMID, optionally onto another node. Returns the UPID of the clone task.",
	InputSchema: objSchema(guestProps(map[string]interface{}{
		"newid":  intProp("VMID for the clone"),
		"name":   strProp("Name for the clone"),
		"target": strProp("Target node (default: same node)"),
		"full":   boolProp("Full clone instead of linked clone (API default when omitted)"),
	}), "node", "vmid", "newid"),
}

var defMigrateVM = ToolDefinition{
	Name:        "migrate_vm",
	Description: "Migrate a guest to another node. Returns the UPID of the migration task.",
	InputSchema: objSchema(guestProps(map[string]interface{}{
		"target_node": strProp("Node to migrate to"),
		"online":      boolProp("Live migration (guest keeps running)"),
	}), "node", "vmid", "target_node"),
}

var defResizeDisk = ToolDefinition{
	Name:        "resize_disk",
	Description: "Grow a guest disk. Size uses Proxmox syntax, e.g. +10G.",
	InputSchema: objSchema(guestProps(map[string]interface{}{
		"disk": strProp("Disk key (e.g. scsi0, rootfs)"),
		"size": strProp("New size or increment (e.g. +10G)"),
	}), "node", "vmid", "disk", "size"),
}

var defGetVMConsole = ToolDefinition{
	Name:        "get_vm_console",
	Description: "Allocate a VNC console proxy for a guest and return the connection ticket and port.",
	InputSchema: objSchema(guestProps(nil), "node", "vmid"),
}

// Snapshots

var defListSnapshots = ToolDefinition{
	Name:        "list_snapshots",
	Description: "List a guest's snapshots.",
	InputSchema: objSchema(guestProps(nil), "node", "vmid"),
}

var defSnapshotVM = ToolDefinition{
	Name:        "snapshot_vm",
	Description: "Create a snapshot of a guest. Returns the UPID of the snapshot task.",
	InputSchema: objSchema(guestProps(map[string]interface{}{
		"snapname":    strProp("Snapshot name"),
		"description": strProp("Snapshot description"),
		"vmstate":     boolProp("Include RAM state (QEMU only)"),
	}), "node", "vmid", "snapname"),
}

var defRollbackVM = ToolDefinition{
	Name:        "rollback_vm",
	Description: "Roll a guest back to a snapshot. Returns the UPID of the rollback task.",
	InputSchema: objSchema(guestProps(map[string]interface{}{
		"snapname": strProp("Snapshot to roll back to"),
	}), "node", "vmid", "snapname"),
}

var defDeleteSnapshot = ToolDefinition{
	Name:        "delete_snapshot",
	Description: "Delete a guest snapshot. Returns the UPID of the delete task.",
	InputSchema: objSchema(guestProps(map[string]interface{}{
		"snapname": strProp("Snapshot to delete"),
	}), "node", "vmid", "snapname"),
}

// Storage

var defListStorage = ToolDefinition{
	Name:        "list_storage",
	Description: "List storages visible on a node with capacity and usage.",
	InputSchema: objSchema(map[string]interface{}{
		"node": strProp("Node name"),
	}, "node"),
}

var defListStoragePools = ToolDefinition{
	Name:        "list_storage_pools",
	Description: "List the cluster-wide storage configuration.",
	InputSchema: objSchema(map[string]interface{}{}),
}

var defListStorageContent = ToolDefinition{
	Name:        "list_storage_content",
	Description: "List volumes on a storage, optionally filtered by content type (iso, backup, images, vztmpl).",
	InputSchema: objSchema(map[string]interface{}{
		"node":    strProp("Node name"),
		"storage": strProp("Storage ID"),
		"content": strProp("Content type filter"),
	}, "node", "storage"),
}

var defDownloadURL = ToolDefinition{
	Name:        "download_url",
	Description: "Download a file from a URL into a storage (ISO images or container templates). Returns the UPID of the download task.",
	InputSchema: objSchema(map[string]interface{}{
		"node":     strProp("Node name"),
		"storage":  strProp("Storage ID"),
		"content":  strProp("Content type: iso or vztmpl"),
		"filename": strProp("Target filename"),
		"url":      strProp("Source URL"),
	}, "node", "storage", "content", "filename", "url"),
}

// Tasks

var defGetTaskStatus = ToolDefinition{
	Name:        "get_task_status",
	Description: "Get the current status of a task by UPID.",
	InputSchema: objSchema(map[string]interface{}{
		"node": strProp("Node the task runs on"),
		"upid": strProp("Task UPID"),
	}, "node", "upid"),
}

var defGetTaskLog = ToolDefinition{
	Name:        "get_task_log",
	Description: "Get the log output of a task by UPID.",
	InputSchema: objSchema(map[string]interface{}{
		"node": strProp("Node the task runs on"),
		"upid": strProp("Task UPID"),
	}, "node", "upid"),
}

var defListTasks = ToolDefinition{
	Name:        "list_tasks",
	Description: "List recent tasks on a node, newest first.",
	InputSchema: objSchema(map[string]interface{}{
		"node":  strProp("Node name"),
		"limit": intProp("Maximum tasks to return (default 50)"),
	}, "node"),
}

var defWaitForTask = ToolDefinition{
	Name:        "wait_for_task",
	Description: "Block until a task finishes or the timeout elapses, then return its final status.",
	InputSchema: objSchema(map[string]interface{}{
		"node":            strProp("Node the task runs on"),
		"upid":            strProp("Task UPID"),
		"timeout_seconds": intProp("Seconds to wait before giving up (default: server task timeout)"),
	}, "node", "upid"),
}

// Firewall

var defListFirewallRules = ToolDefinition{
	Name:        "list_firewall_rules",
	Description: "List firewall rules at cluster, node, or guest scope. For guest scope the guest's type is resolved automatically.",
	InputSchema: objSchema(map[string]interface{}{
		"scope": strProp("Rule scope: cluster, node, or vm (default cluster)"),
		"node":  strProp("Node name (node and vm scope)"),
		"vmid":  intProp("Guest VMID (vm scope)"),
	}),
}

var defAddFirewallRule = ToolDefinition{
	Name:        "add_firewall_rule",
	Description: "Add a firewall rule at cluster, node, or guest scope. The rule object is passed through to the Proxmox rule schema (action, type, source, dest, proto, dport, ...).",
	InputSchema: objSchema(map[string]interface{}{
		"scope": strProp("Rule scope: cluster, node, or vm (default cluster)"),
		"node":  strProp("Node name (node and vm scope)"),
		"vmid":  intProp("Guest VMID (vm scope)"),
		"rule": map[string]interface{}{
			"type":        "object",
			"description": "Rule options, e.g. {\"action\": \"ACCEPT\", \"type\": \"in\", \"dport\": \"22\"}",
		},
	}, "rule"),
}

var defDeleteFirewallRule = ToolDefinition{
	Name:        "delete_firewall_rule",
	Description: "Delete the firewall rule at a position, at cluster, node, or guest scope.",
	InputSchema: objSchema(map[string]interface{}{
		"scope": strProp("Rule scope: cluster, node, or vm (default cluster)"),
		"node":  strProp("Node name (node and vm scope)"),
		"vmid":  intProp("Guest VMID (vm scope)"),
		"pos":   intProp("Rule position to delete"),
	}, "pos"),
}

// Replication

var defListReplicationJobs = ToolDefinition{
	Name:        "list_replication_jobs",
	Description: "List the cluster's storage replication jobs.",
	InputSchema: objSchema(map[string]interface{}{}),
}

var defCreateReplicationJob = ToolDefinition{
	Name:        "create_replication_job",
	Description: "Create a local storage replication job for a guest.",
	InputSchema: objSchema(map[string]interface{}{
		"id":       strProp("Job id in <vmid>-<n> form, e.g. 100-0"),
		"target":   strProp("Target node name"),
		"schedule": strProp("Replication schedule in calendar-event syntax, e.g. */15"),
		"rate":     map[string]interface{}{"type": "number", "description": "Rate limit in MB/s"},
		"comment":  strProp("Job comment"),
		"enable":   boolProp("Whether the job starts enabled"),
	}, "id", "target"),
}

var defUpdateReplicationJob = ToolDefinition{
	Name:        "update_replication_job",
	Description: "Update a replication job's configuration. Changes are passed through to the Proxmox job schema (schedule, rate, comment, disable, ...).",
	InputSchema: objSchema(map[string]interface{}{
		"id": strProp("Job id"),
		"changes": map[string]interface{}{
			"type":        "object",
			"description": "Settings to change",
		},
	}, "id", "changes"),
}

var defDeleteReplicationJob = ToolDefinition{
	Name:        "delete_replication_job",
	Description: "Delete a replication job.",
	InputSchema: objSchema(map[string]interface{}{
		"id": strProp("Job id"),
	}, "id"),
}

// Access / Pools

var defListUsers = ToolDefinition{
	Name:        "list_users",
	Description: "List all users known to the cluster.",
	InputSchema: objSchema(map[string]interface{}{}),
}

var defCreateUser = ToolDefinition{
	Name:        "create_user",
	Description: "Create a user. The userid is in user@realm form (e.g. automation@pve).",
	InputSchema: objSchema(map[string]interface{}{
		"userid":   strProp("User ID in user@realm form"),
		"password": strProp("Initial password (pve realm only)"),
		"comment":  strProp("Comment"),
		"email":    strProp("E-mail address"),
		"groups":   strProp("Comma-separated group list"),
	}, "userid"),
}

var defDeleteUser = ToolDefinition{
	Name:        "delete_user",
	Description: "Delete a user.",
	InputSchema: objSchema(map[string]interface{}{
		"userid": strProp("User ID in user@realm form"),
	}, "userid"),
}

var defListRoles = ToolDefinition{
	Name:        "list_roles",
	Description: "List all roles, built-in and custom, with their privileges.",
	InputSchema: objSchema(map[string]interface{}{}),
}

var defCreateRole = ToolDefinition{
	Name:        "create_role",
	Description: "Create a custom role with a privilege list.",
	InputSchema: objSchema(map[string]interface{}{
		"roleid": strProp("Role name"),
		"privs":  strProp("Comma-separated privilege list (e.g. VM.Audit,VM.PowerMgmt)"),
	}, "roleid", "privs"),
}

var defListACL = ToolDefinition{
	Name:        "list_acl",
	Description: "List the access control list.",
	InputSchema: objSchema(map[string]interface{}{}),
}

var defUpdateACL = ToolDefinition{
	Name:        "update_acl",
	Description: "Grant or revoke a role on a path for users or groups.",
	InputSchema: objSchema(map[string]interface{}{
		"path":      strProp("ACL path (e.g. /vms/100)"),
		"roleid":    strProp("Role to grant or revoke"),
		"users":     strProp("Comma-separated user list"),
		"groups":    strProp("Comma-separated group list"),
		"propagate": boolProp("Propagate to child paths (default true)"),
		"delete":    boolProp("Revoke instead of grant"),
	}, "path", "roleid"),
}

var defListPools = ToolDefinition{
	Name:        "list_pools",
	Description: "List all resource pools.",
	InputSchema: objSchema(map[string]interface{}{}),
}

var defCreatePool = ToolDefinition{
	Name:        "create_pool",
	Description: "Create a resource pool.",
	InputSchema: objSchema(map[string]interface{}{
		"poolid":  strProp("Pool name"),
		"comment": strProp("Comment"),
	}, "poolid"),
}

var defGetPool = ToolDefinition{
	Name:        "get_pool",
	Description: "Get a pool's comment and member resources.",
	InputSchema: objSchema(map[string]interface{}{
		"poolid": strProp("Pool name"),
	}, "poolid"),
}

var defUpdatePool = ToolDefinition{
	Name:        "update_pool",
	Description: "Change a pool's comment or attach/detach guests and storages.",
	InputSchema: objSchema(map[string]interface{}{
		"poolid":  strProp("Pool name"),
		"comment": strProp("New comment"),
		"vms":     strProp("Comma-separated VMID list"),
		"storage": strProp("Comma-separated storage list"),
		"delete":  boolProp("Detach the listed members instead of attaching"),
	}, "poolid"),
}

var defDeletePool = ToolDefinition{
	Name:        "delete_pool",
	Description: "Delete an empty resource pool.",
	InputSchema: objSchema(map[string]interface{}{
		"poolid": strProp("Pool name"),
	}, "poolid"),
}

// Guest Agent

var defAgentPing = ToolDefinition{
	Name:        "agent_ping",
	Description: "Check whether the QEMU guest agent responds inside a VM.",
	InputSchema: objSchema(map[string]interface{}{
		"node": strProp("Node name hosting the VM"),
		"vmid": intProp("VM VMID"),
	}, "node", "vmid"),
}

var defAgentExec = ToolDefinition{
	Name:        "agent_exec",
	Description: "Start a command inside a VM via the guest agent. Returns the agent-side PID; poll with agent_exec_status.",
	InputSchema: objSchema(map[string]interface{}{
		"node": strProp("Node name hosting the VM"),
		"vmid": intProp("VM VMID"),
		"command": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "string"},
			"description": "Command and arguments",
		},
	}, "node", "vmid", "command"),
}

var defAgentExecStatus = ToolDefinition{
	Name:        "agent_exec_status",
	Description: "Poll a command started with agent_exec, returning exit state and captured output.",
	InputSchema: objSchema(map[string]interface{}{
		"node": strProp("Node name hosting the VM"),
		"vmid": intProp("VM VMID"),
		"pid":  intProp("Agent-side PID from agent_exec"),
	}, "node", "vmid", "pid"),
}

var defAgentFileRead = ToolDefinition{
	Name:        "agent_file_read",
	Description: "Read a file from inside a VM via the guest agent.",
	InputSchema: objSchema(map[string]interface{}{
		"node": strProp("Node name hosting the VM"),
		"vmid": intProp("VM VMID"),
		"file": strProp("Absolute path inside the guest"),
	}, "node", "vmid", "file"),
}

var defAgentFileWrite = ToolDefinition{
	Name:        "agent_file_write",
	Description: "Write a file inside a VM via the guest agent.",
	InputSchema: objSchema(map[string]interface{}{
		"node":    strProp("Node name hosting the VM"),
		"vmid":    intProp("VM VMID"),
		"file":    strProp("Absolute path inside the guest"),
		"content": strProp("File content"),
	}, "node", "vmid", "file", "content"),
}

var defAgentNetworkInterfaces = ToolDefinition{
	Name:        "agent_network_interfaces",
	Description: "List a VM's network interfaces as reported by the guest agent.",
	InputSchema: objSchema(map[string]interface{}{
		"node": strProp("Node name hosting the VM"),
		"vmid": intProp("VM VMID"),
	}, "node", "vmid"),
}

// Node System

var defListNetworkInterfaces = ToolDefinition{
	Name:        "list_network_interfaces",
	Description: "List a node's network interfaces and bridges.",
	InputSchema: objSchema(map[string]interface{}{
		"node": strProp("Node name"),
	}, "node"),
}

var defGetNodeRRDData = ToolDefinition{
	Name:        "get_node_rrddata",
	Description: "Get performance metrics for a node over a timeframe.",
	InputSchema: objSchema(map[string]interface{}{
		"node":      strProp("Node name"),
		"timeframe": strProp("hour, day, week, month, or year (default hour)"),
	}, "node"),
}

var defListServices = ToolDefinition{
	Name:        "list_services",
	Description: "List system services on a node with their states.",
	InputSchema: objSchema(map[string]interface{}{
		"node": strProp("Node name"),
	}, "node"),
}

var defManageService = ToolDefinition{
	Name:        "manage_service",
	Description: "Start, stop, or restart a node service. Returns the UPID of the task.",
	InputSchema: objSchema(map[string]interface{}{
		"node":    strProp("Node name"),
		"service": strProp("Service name (e.g. pveproxy)"),
		"action":  strProp("start, stop, or restart"),
	}, "node", "service", "action"),
}

var defListAptUpdates = ToolDefinition{
	Name:        "list_apt_updates",
	Description: "List pending package updates on a node.",
	InputSchema: objSchema(map[string]interface{}{
		"node": strProp("Node name"),
	}, "node"),
}

var defListAptVersions = ToolDefinition{
	Name:        "list_apt_versions",
	Description: "List installed Proxmox-related package versions on a node.",
	InputSchema: objSchema(map[string]interface{}{
		"node": strProp("Node name"),
	}, "node"),
}

var defRunAptUpdate = ToolDefinition{
	Name:        "run_apt_update",
	Description: "Refresh the package index on a node. Returns the UPID of the update task.",
	InputSchema: objSchema(map[string]interface{}{
		"node": strProp("Node name"),
	}, "node"),
}

var defGetPCIDevices = ToolDefinition{
	Name:        "get_pci_devices",
	Description: "List the PCI devices on a node, including IOMMU groups for passthrough planning.",
	InputSchema: objSchema(map[string]interface{}{
		"node": strProp("Node name"),
	}, "node"),
}

var defGetUSBDevices = ToolDefinition{
	Name:        "get_usb_devices",
	Description: "List the USB devices on a node.",
	InputSchema: objSchema(map[string]interface{}{
		"node": strProp("Node name"),
	}, "node"),
}

var defGetSubscription = ToolDefinition{
	Name:        "get_subscription",
	Description: "Get a node's subscription status.",
	InputSchema: objSchema(map[string]interface{}{
		"node": strProp("Node name"),
	}, "node"),
}

var defSetSubscription = ToolDefinition{
	Name:        "set_subscription",
	Description: "Set a node's subscription key.",
	InputSchema: objSchema(map[string]interface{}{
		"node": strProp("Node name"),
		"key":  strProp("Subscription key"),
	}, "node", "key"),
}

var defUpdateSubscription = ToolDefinition{
	Name:        "update_subscription",
	Description: "Force a re-check of a node's subscription against the Proxmox servers.",
	InputSchema: objSchema(map[string]interface{}{
		"node": strProp("Node name"),
	}, "node"),
}
