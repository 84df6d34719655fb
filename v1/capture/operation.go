package capture

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// commandSuffix is the type name suffix SDKs with command objects use,
// e.g. GetObjectCommand.
const commandSuffix = "Command"

// OperationName turns an SDK operation or command type name into the lower camel
// case name recorded on subsegments: "GetObject" and "GetObjectCommand" both
// become "getObject". A bare "Command" yields "".
func OperationName(name string) string {
	name = strings.TrimSuffix(name, commandSuffix)
	if name == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(r)) + name[size:]
}

// OperationNamer is implemented by command values that know their operation name.
type OperationNamer interface {
	OperationName() string
}

// OperationNameOf derives the operation name of a command value. An explicit
// OperationName method wins over the command's type name.
func OperationNameOf(command interface{}) string {
	if command == nil {
		return ""
	}
	if n, ok := command.(OperationNamer); ok {
		return OperationName(n.OperationName())
	}
	t := reflect.TypeOf(command)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return OperationName(t.Name())
}
