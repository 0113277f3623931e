package utils

// local dependencies, all optional: without them the service falls back to
// in-memory stores and a process-local index

//redis (jobs, recordings, index locks)
//docker run -p 6379:6379 -d redis

//qdrant (caption index, grpc on 6334)
//docker run -p 6333:6333 -p 6334:6334 -v captionIndex:/qdrant/storage qdrant/qdrant

//http tts engine, only with SPEECH_PROVIDER=http
//TTS_SERVICE_URL=http://localhost:5002

//regenerate cmd/api/docs after touching a handler's godoc
//swag init -g cmd/api/main.go --parseDependency --parseInternal --dir ./ --output ./cmd/api/docs
