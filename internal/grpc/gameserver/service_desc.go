package gameserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "battleship.v1.BattleshipService"

// Method names
const (
	MethodCreateGame   = "CreateGame"
	MethodGetGame      = "GetGame"
	MethodPlaceShip    = "PlaceShip"
	MethodAutoPlace    = "AutoPlace"
	MethodFire         = "Fire"
	MethodGetResult    = "GetResult"
	MethodSubmitResult = "SubmitResult"
	MethodEndGame      = "EndGame"
)

// FullMethod returns the /service/method path of a method
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// BattleshipServiceServer is the server API. Requests and responses are
// structpb.Struct documents; converters.go lists their fields.
type BattleshipServiceServer interface {
	CreateGame(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetGame(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PlaceShip(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AutoPlace(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Fire(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetResult(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SubmitResult(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EndGame(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(BattleshipServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(BattleshipServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(s, ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes BattleshipService for grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BattleshipServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler(MethodCreateGame, BattleshipServiceServer.CreateGame),
		unaryHandler(MethodGetGame, BattleshipServiceServer.GetGame),
		unaryHandler(MethodPlaceShip, BattleshipServiceServer.PlaceShip),
		unaryHandler(MethodAutoPlace, BattleshipServiceServer.AutoPlace),
		unaryHandler(MethodFire, BattleshipServiceServer.Fire),
		unaryHandler(MethodGetResult, BattleshipServiceServer.GetResult),
		unaryHandler(MethodSubmitResult, BattleshipServiceServer.SubmitResult),
		unaryHandler(MethodEndGame, BattleshipServiceServer.EndGame),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: ProtoFile,
}

// RegisterBattleshipServiceServer registers srv on s
func RegisterBattleshipServiceServer(s grpc.ServiceRegistrar, srv BattleshipServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
