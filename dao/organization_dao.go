// api/dao/organization_dao.go
package dao

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	app_errors "github.com/dev-anuragk/assistly/api/errors"
	logger "github.com/dev-anuragk/assistly/api/logging"
	"github.com/dev-anuragk/assistly/api/model"
)

type OrganizationDAO struct {
	Driver neo4j.Driver
}

func NewOrganizationDAO(driver neo4j.Driver) *OrganizationDAO {
	dao := &OrganizationDAO{Driver: driver}
	ctx := context.Background()
	if err := dao.EnsureConstraints(ctx); err != nil {
		logger.Fatal("Failed to ensure constraints for Organization", zap.Error(err))
	}
	return dao
}

func (dao *OrganizationDAO) EnsureConstraints(ctx context.Context) error {
	logger.Info("Ensuring unique constraints on Organization")
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        CREATE CONSTRAINT unique_organization_id IF NOT EXISTS
        FOR (o:Organization) REQUIRE o.id IS UNIQUE
        `
		_, err := transaction.Run(query, nil)
		return nil, err
	})
	if err != nil {
		logger.Error("Failed to ensure unique constraint on Organization", zap.Error(err))
		return err
	}
	return nil
}

func organizationProps(org model.Organization) map[string]interface{} {
	settingsJSON, _ := json.Marshal(org.Settings)
	return map[string]interface{}{
		"name":        org.Name,
		"domain":      org.Domain,
		"adminUserID": org.AdminUserID,
		"settings":    string(settingsJSON),
		"isActive":    org.IsActive,
		"updatedAt":   time.Now().Format(time.RFC3339),
	}
}

func (dao *OrganizationDAO) CreateOrganization(ctx context.Context, org model.Organization) (string, error) {
	start := time.Now()
	logger.Info("Creating new organization", zap.String("name", org.Name))
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	if org.ID == "" {
		org.ID = uuid.New().String()
	}

	result, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (existing:Organization)
        WHERE existing.name = $name OR ($domain <> '' AND existing.domain = $domain)
        RETURN existing.id as id
        `
		probe, err := transaction.Run(query, map[string]interface{}{
			"name":   org.Name,
			"domain": org.Domain,
		})
		if err != nil {
			return nil, app_errors.ErrDatabaseOperation
		}
		if probe.Next() {
			return nil, app_errors.ErrOrganizationConflict
		}

		query = `
        CREATE (o:Organization {id: $id})
        SET o += $props, o.createdAt = $createdAt
        RETURN o.id as id
        `
		params := map[string]interface{}{
			"id":        org.ID,
			"props":     organizationProps(org),
			"createdAt": time.Now().Format(time.RFC3339),
		}
		created, err := transaction.Run(query, params)
		if err != nil {
			return nil, app_errors.ErrDatabaseOperation
		}
		if created.Next() {
			return created.Record().Values[0], nil
		}
		return nil, app_errors.ErrInternalServer
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create organization",
			zap.Error(err),
			zap.String("name", org.Name),
			zap.Duration("duration", duration))
		return "", err
	}

	orgID := fmt.Sprintf("%v", result)
	logger.Info("Organization created successfully",
		zap.String("organizationID", orgID),
		zap.Duration("duration", duration))
	return orgID, nil
}

func (dao *OrganizationDAO) GetOrganization(ctx context.Context, orgID string) (*model.Organization, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (o:Organization {id: $id})
    RETURN o
    `
	result, err := session.Run(query, map[string]interface{}{"id": orgID})
	if err != nil {
		logger.Error("Failed to execute get organization query",
			zap.Error(err),
			zap.String("organizationID", orgID))
		return nil, app_errors.ErrDatabaseOperation
	}

	if result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		org, err := mapNodeToOrganization(node)
		if err != nil {
			return nil, app_errors.ErrInternalServer
		}
		return org, nil
	}

	return nil, app_errors.ErrOrganizationNotFound
}

// FindByNameOrDomain probes uniqueness at creation time. A nil result means
// the name and domain are both free. An empty domain never matches: two
// organizations without one are not in conflict.
func (dao *OrganizationDAO) FindByNameOrDomain(ctx context.Context, name, domain string) (*model.Organization, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (o:Organization)
    WHERE o.name = $name OR ($domain <> '' AND o.domain = $domain)
    RETURN o
    `
	result, err := session.Run(query, map[string]interface{}{"name": name, "domain": domain})
	if err != nil {
		logger.Error("Failed to execute find organization query", zap.Error(err))
		return nil, app_errors.ErrDatabaseOperation
	}

	if result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		org, err := mapNodeToOrganization(node)
		if err != nil {
			return nil, app_errors.ErrInternalServer
		}
		return org, nil
	}
	return nil, nil
}

func (dao *OrganizationDAO) UpdateOrganization(ctx context.Context, org model.Organization) (*model.Organization, error) {
	start := time.Now()
	logger.Info("Updating organization", zap.String("organizationID", org.ID))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	var updatedOrg *model.Organization
	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (o:Organization {id: $id})
        SET o += $props
        RETURN o
        `
		params := map[string]interface{}{
			"id":    org.ID,
			"props": organizationProps(org),
		}
		result, err := transaction.Run(query, params)
		if err != nil {
			return nil, app_errors.ErrDatabaseOperation
		}
		if result.Next() {
			node := result.Record().Values[0].(neo4j.Node)
			mapped, err := mapNodeToOrganization(node)
			if err != nil {
				return nil, fmt.Errorf("failed to map organization node to struct: %w", err)
			}
			updatedOrg = mapped
			return nil, nil
		}
		return nil, app_errors.ErrOrganizationNotFound
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to update organization",
			zap.Error(err),
			zap.String("organizationID", org.ID),
			zap.Duration("duration", duration))
		return nil, err
	}

	logger.Info("Organization updated successfully",
		zap.String("organizationID", org.ID),
		zap.Duration("duration", duration))
	return updatedOrg, nil
}

func (dao *OrganizationDAO) DeleteOrganization(ctx context.Context, orgID string) error {
	start := time.Now()
	logger.Info("Deleting organization", zap.String("organizationID", orgID))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (o:Organization {id: $id})
        DETACH DELETE o
        `
		result, err := transaction.Run(query, map[string]interface{}{"id": orgID})
		if err != nil {
			return nil, app_errors.ErrDatabaseOperation
		}
		summary, err := result.Consume()
		if err != nil {
			return nil, app_errors.ErrDatabaseOperation
		}
		if summary.Counters().NodesDeleted() == 0 {
			return nil, app_errors.ErrOrganizationNotFound
		}
		return nil, nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to delete organization",
			zap.Error(err),
			zap.String("organizationID", orgID),
			zap.Duration("duration", duration))
		return err
	}

	logger.Info("Organization deleted successfully",
		zap.String("organizationID", orgID),
		zap.Duration("duration", duration))
	return nil
}

func (dao *OrganizationDAO) ListOrganizations(ctx context.Context, page, limit int) ([]*model.Organization, int64, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := `
    MATCH (o:Organization)
    RETURN o
    ORDER BY o.createdAt DESC
    SKIP $skip LIMIT $limit
    `
	result, err := session.Run(query, map[string]interface{}{
		"skip":  (page - 1) * limit,
		"limit": limit,
	})
	if err != nil {
		logger.Error("Failed to list organizations", zap.Error(err))
		return nil, 0, app_errors.ErrDatabaseOperation
	}

	var orgs []*model.Organization
	for result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		org, err := mapNodeToOrganization(node)
		if err != nil {
			return nil, 0, app_errors.ErrInternalServer
		}
		orgs = append(orgs, org)
	}

	countResult, err := session.Run(`MATCH (o:Organization) RETURN count(o) as total`, nil)
	if err != nil {
		logger.Error("Failed to count organizations", zap.Error(err))
		return nil, 0, app_errors.ErrDatabaseOperation
	}
	var total int64
	if countResult.Next() {
		total = countResult.Record().Values[0].(int64)
	}

	return orgs, total, nil
}

func mapNodeToOrganization(node neo4j.Node) (*model.Organization, error) {
	props := node.Props

	org := &model.Organization{
		ID:          stringProp(props, "id"),
		Name:        stringProp(props, "name"),
		Domain:      stringProp(props, "domain"),
		AdminUserID: stringProp(props, "adminUserID"),
	}
	if v, ok := props["isActive"].(bool); ok {
		org.IsActive = v
	}
	if raw := stringProp(props, "settings"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &org.Settings); err != nil {
			return nil, fmt.Errorf("invalid settings: %w", err)
		}
	}

	var err error
	if org.CreatedAt, err = timeProp(props, "createdAt"); err != nil {
		return nil, err
	}
	if org.UpdatedAt, err = timeProp(props, "updatedAt"); err != nil {
		return nil, err
	}
	return org, nil
}
