package rpc

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "authkeeper.v1.Adapter"

const (
	MethodCreateUser              = "CreateUser"
	MethodGetUser                 = "GetUser"
	MethodGetUserByEmail          = "GetUserByEmail"
	MethodGetUserByAccount        = "GetUserByAccount"
	MethodUpdateUser              = "UpdateUser"
	MethodDeleteUser              = "DeleteUser"
	MethodLinkAccount             = "LinkAccount"
	MethodUnlinkAccount           = "UnlinkAccount"
	MethodCreateSession           = "CreateSession"
	MethodGetSessionAndUser       = "GetSessionAndUser"
	MethodUpdateSession           = "UpdateSession"
	MethodDeleteSession           = "DeleteSession"
	MethodCreateVerificationToken = "CreateVerificationToken"
	MethodUseVerificationToken    = "UseVerificationToken"
)

// FullMethod returns the path a client invokes for method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}
