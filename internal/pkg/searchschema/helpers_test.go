package searchschema_test

import (
	"reflect"

	"github.com/hitesh22rana/searchsync/internal/pkg/searchschema"
)

var reflectDescriptor = reflect.TypeOf(searchschema.Descriptor{})
