// api/dao/user_dao.go
package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	app_errors "github.com/dev-anuragk/assistly/api/errors"
	logger "github.com/dev-anuragk/assistly/api/logging"
	"github.com/dev-anuragk/assistly/api/model"
)

// UserDAO is the account directory: the source of truth for user existence,
// status, current role and current organization membership.
type UserDAO struct {
	Driver neo4j.Driver
}

func NewUserDAO(driver neo4j.Driver) *UserDAO {
	dao := &UserDAO{Driver: driver}
	ctx := context.Background()
	if err := dao.EnsureConstraints(ctx); err != nil {
		logger.Fatal("Failed to ensure constraints for User", zap.Error(err))
	}
	return dao
}

func (dao *UserDAO) EnsureConstraints(ctx context.Context) error {
	logger.Info("Ensuring unique constraints on User")
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		queries := []string{
			`CREATE CONSTRAINT unique_user_id IF NOT EXISTS
			 FOR (u:User) REQUIRE u.id IS UNIQUE`,
			`CREATE CONSTRAINT unique_user_email IF NOT EXISTS
			 FOR (u:User) REQUIRE u.email IS UNIQUE`,
		}
		for _, query := range queries {
			if _, err := transaction.Run(query, nil); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})

	if err != nil {
		logger.Error("Failed to ensure unique constraints on User", zap.Error(err))
		return err
	}
	return nil
}

func userProps(user model.User) map[string]interface{} {
	props := map[string]interface{}{
		"email":          user.Email,
		"password":       user.Password,
		"firstName":      user.FirstName,
		"lastName":       user.LastName,
		"role":           string(user.Role),
		"status":         string(user.Status),
		"organizationID": user.OrganizationID,
		"updatedAt":      time.Now().Format(time.RFC3339),
	}
	if user.LastLoginAt != nil {
		props["lastLoginAt"] = user.LastLoginAt.Format(time.RFC3339)
	}
	return props
}

func (dao *UserDAO) CreateUser(ctx context.Context, user model.User) (string, error) {
	start := time.Now()
	logger.Info("Creating new user", zap.String("email", user.Email))
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	result, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (existing:User {email: $email})
        RETURN existing.id as id
        `
		probe, err := transaction.Run(query, map[string]interface{}{"email": user.Email})
		if err != nil {
			return nil, app_errors.ErrDatabaseOperation
		}
		if probe.Next() {
			return nil, app_errors.ErrUserConflict
		}

		query = `
        CREATE (u:User {id: $id})
        SET u += $props, u.createdAt = $createdAt
        RETURN u.id as id
        `
		params := map[string]interface{}{
			"id":        user.ID,
			"props":     userProps(user),
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
		logger.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
			zap.Duration("duration", duration))
		return "", err
	}

	userID := fmt.Sprintf("%v", result)
	logger.Info("User created successfully",
		zap.String("userID", userID),
		zap.Duration("duration", duration))
	return userID, nil
}

func (dao *UserDAO) UpdateUser(ctx context.Context, user model.User) (*model.User, error) {
	start := time.Now()
	logger.Info("Updating user", zap.String("userID", user.ID))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	var updatedUser *model.User
	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (u:User {id: $id})
        SET u += $props
        RETURN u
        `
		params := map[string]interface{}{
			"id":    user.ID,
			"props": userProps(user),
		}

		result, err := transaction.Run(query, params)
		if err != nil {
			return nil, app_errors.ErrDatabaseOperation
		}
		if result.Next() {
			node := result.Record().Values[0].(neo4j.Node)
			mapped, err := mapNodeToUser(node)
			if err != nil {
				return nil, fmt.Errorf("failed to map user node to struct: %w", err)
			}
			updatedUser = mapped
			return nil, nil
		}
		return nil, app_errors.ErrUserNotFound
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to update user",
			zap.Error(err),
			zap.String("userID", user.ID),
			zap.Duration("duration", duration))
		return nil, err
	}

	logger.Info("User updated successfully",
		zap.String("userID", user.ID),
		zap.Duration("duration", duration))
	return updatedUser, nil
}

func (dao *UserDAO) DeleteUser(ctx context.Context, userID string) error {
	start := time.Now()
	logger.Info("Deleting user", zap.String("userID", userID))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (u:User {id: $id})
        DETACH DELETE u
        `
		result, err := transaction.Run(query, map[string]interface{}{"id": userID})
		if err != nil {
			return nil, app_errors.ErrDatabaseOperation
		}

		summary, err := result.Consume()
		if err != nil {
			return nil, app_errors.ErrDatabaseOperation
		}
		if summary.Counters().NodesDeleted() == 0 {
			return nil, app_errors.ErrUserNotFound
		}
		return nil, nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to delete user",
			zap.Error(err),
			zap.String("userID", userID),
			zap.Duration("duration", duration))
		return err
	}

	logger.Info("User deleted successfully",
		zap.String("userID", userID),
		zap.Duration("duration", duration))
	return nil
}

// GetUser fetches a user by id. Authorization re-reads current state through
// this method on every request instead of trusting token claims.
func (dao *UserDAO) GetUser(ctx context.Context, userID string) (*model.User, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (u:User {id: $id})
    RETURN u
    `
	result, err := session.Run(query, map[string]interface{}{"id": userID})
	if err != nil {
		logger.Error("Failed to execute get user query",
			zap.Error(err),
			zap.String("userID", userID))
		return nil, app_errors.ErrDatabaseOperation
	}

	if result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		user, err := mapNodeToUser(node)
		if err != nil {
			logger.Error("Failed to map user node to struct",
				zap.Error(err),
				zap.String("userID", userID))
			return nil, app_errors.ErrInternalServer
		}
		return user, nil
	}

	return nil, app_errors.ErrUserNotFound
}

func (dao *UserDAO) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (u:User {email: $email})
    RETURN u
    `
	result, err := session.Run(query, map[string]interface{}{"email": email})
	if err != nil {
		logger.Error("Failed to execute get user by email query", zap.Error(err))
		return nil, app_errors.ErrDatabaseOperation
	}

	if result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		user, err := mapNodeToUser(node)
		if err != nil {
			return nil, app_errors.ErrInternalServer
		}
		return user, nil
	}

	return nil, app_errors.ErrUserNotFound
}

// sortableUserFields whitelists sort targets; anything else falls back to
// createdAt to keep user input out of the Cypher string.
var sortableUserFields = map[string]string{
	"createdAt": "createdAt",
	"email":     "email",
	"role":      "role",
	"status":    "status",
}

// ListUsers returns one page of users plus the total count for the same
// criteria. An organization filter is applied when present; the service layer
// decides whose organization that is.
func (dao *UserDAO) ListUsers(ctx context.Context, criteria model.UserSearchCriteria) ([]*model.User, int64, error) {
	start := time.Now()
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	where := ""
	params := map[string]interface{}{}
	if criteria.OrganizationID != "" {
		where = "WHERE u.organizationID = $organizationID"
		params["organizationID"] = criteria.OrganizationID
	}

	sortField, ok := sortableUserFields[criteria.SortBy]
	if !ok {
		sortField = "createdAt"
	}
	order := "DESC"
	if criteria.SortOrder == "asc" {
		order = "ASC"
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	limit := criteria.Limit
	if limit < 1 {
		limit = 10
	}
	params["skip"] = (page - 1) * limit
	params["limit"] = limit

	query := fmt.Sprintf(`
    MATCH (u:User)
    %s
    RETURN u
    ORDER BY u.%s %s
    SKIP $skip LIMIT $limit
    `, where, sortField, order)

	result, err := session.Run(query, params)
	if err != nil {
		logger.Error("Failed to list users", zap.Error(err))
		return nil, 0, app_errors.ErrDatabaseOperation
	}

	var users []*model.User
	for result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		user, err := mapNodeToUser(node)
		if err != nil {
			return nil, 0, app_errors.ErrInternalServer
		}
		users = append(users, user)
	}

	countQuery := fmt.Sprintf(`
    MATCH (u:User)
    %s
    RETURN count(u) as total
    `, where)
	countResult, err := session.Run(countQuery, params)
	if err != nil {
		logger.Error("Failed to count users", zap.Error(err))
		return nil, 0, app_errors.ErrDatabaseOperation
	}
	var total int64
	if countResult.Next() {
		total = countResult.Record().Values[0].(int64)
	}

	logger.Info("Users listed successfully",
		zap.Int("count", len(users)),
		zap.Int64("total", total),
		zap.Duration("duration", time.Since(start)))
	return users, total, nil
}

func (dao *UserDAO) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (u:User {id: $id})
        SET u.lastLoginAt = $lastLoginAt
        `
		_, err := transaction.Run(query, map[string]interface{}{
			"id":          userID,
			"lastLoginAt": at.Format(time.RFC3339),
		})
		return nil, err
	})
	if err != nil {
		logger.Error("Failed to update last login", zap.Error(err), zap.String("userID", userID))
		return app_errors.ErrDatabaseOperation
	}
	return nil
}

// UnbindOrganization detaches every member of the organization and forces
// them inactive. Accounts are kept, not deleted; this is the cascade half of
// organization deletion.
func (dao *UserDAO) UnbindOrganization(ctx context.Context, organizationID string) (int64, error) {
	start := time.Now()
	logger.Info("Unbinding users from organization", zap.String("organizationID", organizationID))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	result, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (u:User {organizationID: $organizationID})
        REMOVE u.organizationID
        SET u.status = $status, u.updatedAt = $updatedAt
        RETURN count(u) as unbound
        `
		params := map[string]interface{}{
			"organizationID": organizationID,
			"status":         string(model.StatusInactive),
			"updatedAt":      time.Now().Format(time.RFC3339),
		}
		res, err := transaction.Run(query, params)
		if err != nil {
			return nil, app_errors.ErrDatabaseOperation
		}
		if res.Next() {
			return res.Record().Values[0], nil
		}
		return int64(0), nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to unbind users from organization",
			zap.Error(err),
			zap.String("organizationID", organizationID),
			zap.Duration("duration", duration))
		return 0, err
	}

	unbound, _ := result.(int64)
	logger.Info("Users unbound from organization",
		zap.String("organizationID", organizationID),
		zap.Int64("unbound", unbound),
		zap.Duration("duration", duration))
	return unbound, nil
}

func mapNodeToUser(node neo4j.Node) (*model.User, error) {
	props := node.Props

	user := &model.User{
		ID:             stringProp(props, "id"),
		Email:          stringProp(props, "email"),
		Password:       stringProp(props, "password"),
		FirstName:      stringProp(props, "firstName"),
		LastName:       stringProp(props, "lastName"),
		Role:           model.Role(stringProp(props, "role")),
		Status:         model.UserStatus(stringProp(props, "status")),
		OrganizationID: stringProp(props, "organizationID"),
	}

	var err error
	if user.CreatedAt, err = timeProp(props, "createdAt"); err != nil {
		return nil, err
	}
	if user.UpdatedAt, err = timeProp(props, "updatedAt"); err != nil {
		return nil, err
	}
	if raw := stringProp(props, "lastLoginAt"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid lastLoginAt: %w", err)
		}
		user.LastLoginAt = &t
	}
	return user, nil
}

func stringProp(props map[string]interface{}, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}

func timeProp(props map[string]interface{}, key string) (time.Time, error) {
	raw := stringProp(props, key)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return t, nil
}
