package intent

import "strings"

type Kind string

const (
	KindCreate  Kind = "create"
	KindSearch  Kind = "search"
	KindList    Kind = "list"
	KindUnknown Kind = "unknown"
)

const (
	LabelRecordService      = "record_service"
	LabelSearchService      = "search_service"
	LabelListActiveServices = "list_active_services"
)

// rótulos aceitos (com sinônimos) por intenção canônica
var labels = map[string]Kind{
	LabelRecordService:      KindCreate,
	"create_service":        KindCreate,
	"create_service_record": KindCreate,
	"register_service":      KindCreate,

	LabelSearchService: KindSearch,
	"search":           KindSearch,

	LabelListActiveServices: KindList,
}

// KindOf maps a classifier label to its canonical intent.
func KindOf(label string) Kind {
	if k, ok := labels[strings.ToLower(strings.TrimSpace(label))]; ok {
		return k
	}
	return KindUnknown
}
