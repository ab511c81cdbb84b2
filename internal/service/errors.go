package service

import "errors"

var (
	ErrUserNotFound      = errors.New("用户不存在")
	ErrUserExist         = errors.New("用户名已被占用")
	ErrPasswordIncorrect = errors.New("用户名或密码错误")
	ErrStoryNotFound     = errors.New("故事不存在")
	ErrStoryNotOwned     = errors.New("无权操作该故事")
	ErrActionDuplicate   = errors.New("请勿重复操作")
	ErrFollowSelf        = errors.New("不能关注自己")
	ErrFollowNotFound    = errors.New("未关注该用户")
	ErrLikeNotFound      = errors.New("尚未点赞")
	ErrFeedUnavailable   = errors.New("推荐服务暂不可用")
	ErrVariantInvalid    = errors.New("实验分组不合法")
	ErrFileNotSupported  = errors.New("文件类型不支持")
	UnauthorizedError    = errors.New("未登录或登录已过期")
	ForbiddenError       = errors.New("权限不足")
	UnExpectedError      = errors.New("系统繁忙，请稍后再试")
)

// ErrorMap 业务错误到业务码的映射，未命中的按500处理
var ErrorMap = map[error]int{
	ErrUserNotFound:      404,
	ErrUserExist:         400,
	ErrPasswordIncorrect: 400,
	ErrStoryNotFound:     404,
	ErrStoryNotOwned:     403,
	ErrActionDuplicate:   400,
	ErrFollowSelf:        400,
	ErrFollowNotFound:    400,
	ErrLikeNotFound:      400,
	ErrFeedUnavailable:   500,
	ErrVariantInvalid:    400,
	ErrFileNotSupported:  400,
	UnauthorizedError:    401,
	ForbiddenError:       403,
	UnExpectedError:      500,
}
