package gameserver

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ProtoFile is the registered file that declares BattleshipService. It has
// no .proto source; the descriptor is built from ServiceDesc at init.
const ProtoFile = "battleship/v1/battleship.proto"

const (
	protoPackage     = "battleship.v1"
	protoServiceName = "BattleshipService"
)

func init() {
	fd, err := buildServiceFile(protoregistry.GlobalFiles)
	if err != nil {
		panic(fmt.Sprintf("gameserver: build %s: %v", ProtoFile, err))
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(fmt.Sprintf("gameserver: register %s: %v", ProtoFile, err))
	}
}

// buildServiceFile describes every unary method in ServiceDesc as
// google.protobuf.Struct in, google.protobuf.Struct out
func buildServiceFile(resolver protodesc.Resolver) (protoreflect.FileDescriptor, error) {
	structType := "." + string((&structpb.Struct{}).ProtoReflect().Descriptor().FullName())

	methods := make([]*descriptorpb.MethodDescriptorProto, 0, len(ServiceDesc.Methods))
	for _, m := range ServiceDesc.Methods {
		methods = append(methods, &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(m.MethodName),
			InputType:  proto.String(structType),
			OutputType: proto.String(structType),
		})
	}

	file := &descriptorpb.FileDescriptorProto{
		Name:       proto.String(ProtoFile),
		Package:    proto.String(protoPackage),
		Dependency: []string{structpb.File_google_protobuf_struct_proto.Path()},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name:   proto.String(protoServiceName),
			Method: methods,
		}},
		Options: &descriptorpb.FileOptions{
			GoPackage: proto.String("github.com/mitchelldurbincs/battleship/internal/grpc/gameserver"),
		},
		Syntax: proto.String("proto3"),
	}
	return protodesc.NewFile(file, resolver)
}
