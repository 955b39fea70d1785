package worker

import (
	"github.com/hibiken/asynq"
)

func RegisterHandlers(mux *asynq.ServeMux, files FileURLSetter, store ObjectStore) {
	archive := NewArchiveTaskHandler(files, store)

	mux.HandleFunc(TypeArchiveOriginal, archive.HandleArchive)
	mux.HandleFunc(TypePurgeOriginal, archive.HandlePurge)
}
