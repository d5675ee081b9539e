package response

// 对外错误文案集中管理；500 一律回笼统文案，细节只进日志
const (
	MsgInvalidID       = "Invalid user ID"
	MsgUserNotFound    = "User not found"
	MsgDuplicateName   = "A user with this name already exists"
	MsgDeletionBlocked = "Cannot delete user with assigned tasks. Please reassign or delete the tasks first."
	MsgRouteNotFound   = "Route not found"
)
