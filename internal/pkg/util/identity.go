package util

import (
	"hash/crc32"
	"strconv"
)

// Identity 一次请求的观看者身份：登录用户优先于匿名会话，二者互斥
type Identity struct {
	ViewerID  uint64
	SessionID string
}

// ResolveIdentity 统一身份判定：viewerID 存在时忽略 sessionID
func ResolveIdentity(viewerID uint64, sessionID string) Identity {
	if viewerID > 0 {
		return Identity{ViewerID: viewerID}
	}
	return Identity{SessionID: sessionID}
}

// IsAnonymous 既无用户也无会话
func (i Identity) IsAnonymous() bool {
	return i.ViewerID == 0 && i.SessionID == ""
}

// BucketViewer 将用户 ID 稳定散列到 n 个实验桶之一
func BucketViewer(viewerID uint64, n int) int {
	sum := crc32.ChecksumIEEE([]byte(strconv.FormatUint(viewerID, 10)))
	return int(sum % uint32(n))
}
