package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	ErrNotAnAdmin           = errors.New("User is not an admin")
	ErrSuperAdminImmutable  = errors.New("Cannot revoke super admin privileges")
	ErrSuperAdminRejection  = errors.New("Cannot reject super admin")
	ErrSuperAdminDeleteSelf = errors.New("Cannot delete super admin user")
)

type User struct {
	Id           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Password     string             `bson:"password" json:"-"`
	Role         string             `bson:"role" json:"role"`
	IsApproved   bool               `bson:"isApproved" json:"isApproved"`
	IsSuperAdmin bool               `bson:"isSuperAdmin" json:"isSuperAdmin"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewUser builds a user document for signup. adminCount is the number of admin
// accounts that exist at decision time: the very first admin ever created
// becomes the super admin and is auto-approved, every later admin starts
// unapproved. Regular users are always auto-approved.
func NewUser(name, email, hashedPassword, role string, adminCount int64) User {
	now := time.Now()
	u := User{
		Id:         primitive.NewObjectID(),
		Name:       name,
		Email:      email,
		Password:   hashedPassword,
		Role:       role,
		IsApproved: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if role == RoleAdmin {
		if adminCount == 0 {
			u.IsSuperAdmin = true
		} else {
			u.IsApproved = false
		}
	}
	return u
}

// PendingApproval reports whether the account is an admin still waiting for
// super admin approval. Such accounts cannot log in.
func (u *User) PendingApproval() bool {
	return u.Role == RoleAdmin && !u.IsApproved
}

// Approve marks a pending admin as approved.
func (u *User) Approve() error {
	if u.Role != RoleAdmin {
		return ErrNotAnAdmin
	}
	u.IsApproved = true
	return nil
}

// Revoke withdraws approval from an admin, sending them back to pending.
func (u *User) Revoke() error {
	if u.IsSuperAdmin {
		return ErrSuperAdminImmutable
	}
	u.IsApproved = false
	return nil
}

// Reject turns an admin account back into a regular, auto-approved user.
func (u *User) Reject() error {
	if u.IsSuperAdmin {
		return ErrSuperAdminRejection
	}
	u.Role = RoleUser
	u.IsApproved = true
	return nil
}

// DeletableBy reports whether actor may delete this account. A super admin
// account can only be deleted by itself.
func (u *User) DeletableBy(actor *User) error {
	if u.IsSuperAdmin && u.Id != actor.Id {
		return ErrSuperAdminDeleteSelf
	}
	return nil
}
