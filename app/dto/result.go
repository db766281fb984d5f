package dto

import "github.com/DevRyuki/todo-with-cline/app/entity"

type LoginResult struct {
	AccessToken  string
	SessionToken string
	ExpiresIn    int64
	User         *entity.User
}
