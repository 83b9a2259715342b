package primitive_test

import (
	"fmt"

	"form-binder/primitive"
)

func Example() {
	for _, name := range []string{"", "percent", "JSObject", "checkbox", "nope"} {
		k, ok := primitive.ParseKind(name)
		fmt.Println(k, ok)
	}
	// Output:
	// KindText true
	// KindPercent true
	// KindJSObject true
	// KindCheckbox true
	// KindEnum(0) false
}
