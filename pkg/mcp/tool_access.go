package mcp

import "context"

func handleListUsers(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	users, err := s.client.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(users)
}

func handleCreateUser(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	userid, err := requireString(args, "userid")
	if err != nil {
		return nil, err
	}

	extra := map[string]interface{}{}
	for _, key := range []string{"password", "comment", "email", "groups"} {
		if v := getString(args, key, ""); v != "" {
			extra[key] = v
		}
	}

	if err := s.client.CreateUser(ctx, userid, extra); err != nil {
		return nil, err
	}
	return ToolResultTextf("User '%s' created.", userid), nil
}

func handleDeleteUser(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	userid, err := requireString(args, "userid")
	if err != nil {
		return nil, err
	}
	if err := s.client.DeleteUser(ctx, userid); err != nil {
		return nil, err
	}
	return ToolResultTextf("User '%s' deleted.", userid), nil
}

func handleListRoles(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	roles, err := s.client.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(roles)
}

func handleCreateRole(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	roleid, err := requireString(args, "roleid")
	if err != nil {
		return nil, err
	}
	privs, err := requireString(args, "privs")
	if err != nil {
		return nil, err
	}

	if err := s.client.CreateRole(ctx, roleid, privs); err != nil {
		return nil, err
	}
	return ToolResultTextf("Role '%s' created.", roleid), nil
}

func handleListACL(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	acl, err := s.client.ListACL(ctx)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(acl)
}

func handleUpdateACL(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	path, err := requireString(args, "path")
	if err != nil {
		return nil, err
	}
	roleid, err := requireString(args, "roleid")
	if err != nil {
		return nil, err
	}

	err = s.client.UpdateACL(ctx, path, roleid,
		getString(args, "users", ""),
		getString(args, "groups", ""),
		getBool(args, "propagate", true),
		getBool(args, "delete", false),
	)
	if err != nil {
		return nil, err
	}
	return ToolResultTextf("ACL on '%s' updated.", path), nil
}

func handleListPools(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	pools, err := s.client.ListPools(ctx)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(pools)
}

func handleCreatePool(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	poolid, err := requireString(args, "poolid")
	if err != nil {
		return nil, err
	}
	if err := s.client.CreatePool(ctx, poolid, getString(args, "comment", "")); err != nil {
		return nil, err
	}
	return ToolResultTextf("Pool '%s' created.", poolid), nil
}

func handleGetPool(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	poolid, err := requireString(args, "poolid")
	if err != nil {
		return nil, err
	}
	details, err := s.client.GetPool(ctx, poolid)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(details)
}

func handleUpdatePool(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	poolid, err := requireString(args, "poolid")
	if err != nil {
		return nil, err
	}

	err = s.client.UpdatePool(ctx, poolid,
		getString(args, "comment", ""),
		getString(args, "vms", ""),
		getString(args, "storage", ""),
		getBool(args, "delete", false),
	)
	if err != nil {
		return nil, err
	}
	return ToolResultTextf("Pool '%s' updated.", poolid), nil
}

func handleDeletePool(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	poolid, err := requireString(args, "poolid")
	if err != nil {
		return nil, err
	}
	if err := s.client.DeletePool(ctx, poolid); err != nil {
		return nil, err
	}
	return ToolResultTextf("Pool '%s' deleted.", poolid), nil
}
