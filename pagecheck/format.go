package pagecheck

import (
	"fmt"
	"strings"

	"github.com/go-rod/rod/lib/proto"
)

// formatConsole renders a console API call as `console[<type>] <text>`.
func formatConsole(e *proto.RuntimeConsoleAPICalled) string {
	texts := make([]string, 0, len(e.Args))
	for _, arg := range e.Args {
		texts = append(texts, remoteObjectText(arg))
	}

	return fmt.Sprintf("console[%s] %s", e.Type, strings.Join(texts, " "))
}

// formatException renders an uncaught exception as `pageerror <message>`,
// where message is the error's message without its class name or stack.
func formatException(e *proto.RuntimeExceptionThrown) string {
	details := e.ExceptionDetails
	if details == nil {
		return "pageerror"
	}

	msg := details.Text
	if details.Exception != nil && details.Exception.Description != "" {
		// description carries the stack, only the first line is the message
		msg, _, _ = strings.Cut(details.Exception.Description, "\n")
		if name := details.Exception.ClassName; name != "" {
			msg = strings.TrimPrefix(msg, name+": ")
		}
	} else if details.Exception != nil && details.Exception.Type == proto.RuntimeRemoteObjectTypeString {
		msg = details.Exception.Value.Str()
	}

	return "pageerror " + msg
}

func remoteObjectText(obj *proto.RuntimeRemoteObject) string {
	if obj == nil {
		return ""
	}

	switch obj.Type {
	case proto.RuntimeRemoteObjectTypeString:
		return obj.Value.Str()
	case proto.RuntimeRemoteObjectTypeUndefined:
		return "undefined"
	}

	if obj.UnserializableValue != "" {
		return string(obj.UnserializableValue)
	}
	if obj.Description != "" {
		return obj.Description
	}

	return obj.Value.JSON("", "")
}
