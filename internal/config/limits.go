package config

const (
	// MaxTranscricaoLength caps intake transcripts. Transcripts beyond
	// this are cut off client-side before submission; the server
	// rejects anything longer to keep prompt sizes bounded.
	MaxTranscricaoLength = 200_000

	// MaxConteudoLength caps piece content. Generated pieces are
	// markdown documents of at most a few hundred kilobytes.
	MaxConteudoLength = 500_000

	// MaxMotivoLength caps rejection reasons.
	MaxMotivoLength = 2_000

	// MaxTemplateLength caps tenant document templates.
	MaxTemplateLength = 100_000

	// MaxDocumentosPorRefino bounds how many documents may be folded
	// into a single refinement pass.
	MaxDocumentosPorRefino = 20
)
