package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrm/internal/domain/auth"
	"hrm/internal/platform/config"
)

// ReferenceDepartments covers every evaluation regime so a fresh tenant can
// record evaluations straight away.
var ReferenceDepartments = []string{
	"Pre-Elementary",
	"Elementary",
	"High School",
	"Senior High",
	"College",
	"Administration",
}

var ReferencePositions = []string{
	"Teacher",
	"Assistant Teacher",
	"Coordinator",
	"Staff",
}

// Seed creates the default tenant with its roles, permission grants, reference
// departments and positions, and the initial admin, all in one transaction.
// Running it again changes nothing.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	return pgx.BeginTxFunc(ctx, pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var tenantID string
		if err := tx.QueryRow(ctx, `
      INSERT INTO tenants (name) VALUES ($1)
      ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
      RETURNING id
    `, cfg.SeedTenantName).Scan(&tenantID); err != nil {
			return fmt.Errorf("tenant: %w", err)
		}

		if _, err := tx.Exec(ctx, `
      INSERT INTO permissions (key) SELECT unnest($1::text[])
      ON CONFLICT (key) DO NOTHING
    `, auth.DefaultPermissions); err != nil {
			return fmt.Errorf("permissions: %w", err)
		}

		roleIDs := make(map[string]string, len(auth.RolePermissions))
		for roleName, perms := range auth.RolePermissions {
			var roleID string
			if err := tx.QueryRow(ctx, `
        INSERT INTO roles (tenant_id, name) VALUES ($1, $2)
        ON CONFLICT (tenant_id, name) DO UPDATE SET name = EXCLUDED.name
        RETURNING id
      `, tenantID, roleName).Scan(&roleID); err != nil {
				return fmt.Errorf("role %s: %w", roleName, err)
			}
			roleIDs[roleName] = roleID

			if _, err := tx.Exec(ctx, `
        INSERT INTO role_permissions (role_id, permission_id)
        SELECT $1, p.id FROM permissions p WHERE p.key = ANY($2::text[])
        ON CONFLICT DO NOTHING
      `, roleID, perms); err != nil {
				return fmt.Errorf("grants for %s: %w", roleName, err)
			}
		}

		for table, names := range map[string][]string{"departments": ReferenceDepartments, "positions": ReferencePositions} {
			if _, err := tx.Exec(ctx, `
        INSERT INTO `+table+` (tenant_id, name) SELECT $1, unnest($2::text[])
        ON CONFLICT (tenant_id, name) DO NOTHING
      `, tenantID, names); err != nil {
				return fmt.Errorf("%s: %w", table, err)
			}
		}

		return seedAdmin(ctx, tx, tenantID, roleIDs[auth.RoleAdmin], cfg.SeedAdminEmail, cfg.SeedAdminPassword)
	})
}

func seedAdmin(ctx context.Context, tx pgx.Tx, tenantID, roleID, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
    INSERT INTO users (tenant_id, email, password_hash, role_id, status)
    VALUES ($1, $2, $3, $4, $5)
    ON CONFLICT (tenant_id, email) DO NOTHING
  `, tenantID, email, hash, roleID, auth.UserStatusActive)
	if err != nil {
		return fmt.Errorf("admin user: %w", err)
	}
	if tag.RowsAffected() > 0 {
		slog.Info("seeded admin user", "email", email)
	}
	return nil
}
