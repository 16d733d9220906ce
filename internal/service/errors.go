package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	TooManyRequests     = 429
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("参数错误")
	ErrUserNotFound         = errors.New("用户不存在")
	ErrRelationshipNotFound = errors.New("未绑定情侣关系")
	ErrGroupNotFound        = errors.New("圈子不存在")
	ErrNotGroupMember       = errors.New("不是圈子成员")
	ErrSelfPair             = errors.New("不能和自己配对")
	ErrServiceBusy          = errors.New("服务繁忙，请稍后再试")
	ErrGenerationFailed     = errors.New("生成失败")
	UnauthorizedError       = errors.New("权限不足")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrUserNotFound:         NotFound,
	ErrRelationshipNotFound: NotFound,
	ErrGroupNotFound:        NotFound,
	ErrNotGroupMember:       BadRequest,
	ErrSelfPair:             BadRequest,
	ErrServiceBusy:          TooManyRequests,
	ErrGenerationFailed:     InternalServerError,
	UnauthorizedError:       Unauthorized,
	UnExpectedError:         InternalServerError,
}
