package authz

import (
	"github.com/GhofranWarrakia/Task-Management-API/internal/models/user"

	"github.com/google/uuid"
)

type Action string

const (
	ActionUserList    Action = "user.list"
	ActionUserView    Action = "user.view"
	ActionUserCreate  Action = "user.create"
	ActionUserUpdate  Action = "user.update"
	ActionUserDelete  Action = "user.delete"
	ActionUserRestore Action = "user.restore"

	ActionTaskList   Action = "task.list"
	ActionTaskView   Action = "task.view"
	ActionTaskCreate Action = "task.create"
	ActionTaskUpdate Action = "task.update"
	ActionTaskDelete Action = "task.delete"
	ActionTaskAssign Action = "task.assign"
)

// Scope - насколько широко роль может выполнять действие
type Scope int

const (
	// действия нет в таблице - неявный deny
	ScopeNone Scope = iota
	// любой ресурс
	ScopeAny
	// только ресурс, чьё поле владельца совпадает с actor.ID
	ScopeOwn
)

// единая таблица политики вместо разбросанных по хендлерам if-ов
var policy = map[Action]map[user.Role]Scope{
	ActionUserList: {
		user.RoleAdmin: ScopeAny,
	},
	ActionUserView: {
		user.RoleAdmin:   ScopeAny,
		user.RoleManager: ScopeAny,
		user.RoleUser:    ScopeOwn,
	},
	ActionUserCreate: {
		user.RoleAdmin: ScopeAny,
	},
	ActionUserUpdate: {
		user.RoleAdmin: ScopeAny,
	},
	ActionUserDelete: {
		user.RoleAdmin: ScopeAny,
	},
	ActionUserRestore: {
		user.RoleAdmin: ScopeAny,
	},
	ActionTaskList: {
		user.RoleAdmin:   ScopeAny,
		user.RoleManager: ScopeAny,
		user.RoleUser:    ScopeAny,
	},
	ActionTaskView: {
		user.RoleAdmin:   ScopeAny,
		user.RoleManager: ScopeAny,
		user.RoleUser:    ScopeAny,
	},
	ActionTaskCreate: {
		user.RoleAdmin: ScopeAny,
	},
	ActionTaskUpdate: {
		user.RoleAdmin: ScopeAny,
		user.RoleUser:  ScopeOwn,
	},
	ActionTaskDelete: {
		user.RoleAdmin: ScopeAny,
	},
	ActionTaskAssign: {
		user.RoleAdmin:   ScopeAny,
		user.RoleManager: ScopeAny,
	},
}

// ScopeFor возвращает область действия роли без привязки к ресурсу.
// Нужно, чтобы отказать до похода в хранилище, когда у роли нет даже
// ограниченного доступа.
func ScopeFor(actor *user.User, action Action) Scope {
	if actor == nil {
		return ScopeNone
	}
	byRole, ok := policy[action]
	if !ok {
		return ScopeNone
	}
	scope, ok := byRole[actor.Role]
	if !ok {
		return ScopeNone
	}
	return scope
}

// Allowed решает allow/deny для конкретного ресурса. owner - поле
// идентичности ресурса: id пользователя для user.*, assigned_to для task.*.
func Allowed(actor *user.User, action Action, owner *uuid.UUID) bool {
	switch ScopeFor(actor, action) {
	case ScopeAny:
		return true
	case ScopeOwn:
		return owner != nil && *owner == actor.ID
	default:
		return false
	}
}
