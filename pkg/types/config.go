package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Base URL used when building absolute links (email document links,
	// dashboard link).
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8080"`

	// Session cookie
	SessionCookieName string `envconfig:"SESSION_COOKIE_NAME" default:"gf_admin_session"`
	SessionMaxAgeSec  int    `envconfig:"SESSION_MAX_AGE_SEC" default:"604800"` // 7 days

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes

	// Uploaded file storage. Backend is "local" or "s3".
	StorageBackend  string `envconfig:"STORAGE_BACKEND" default:"local"`
	UploadDir       string `envconfig:"UPLOAD_DIR" default:"static/uploads"`
	IDUploadDir     string `envconfig:"ID_UPLOAD_DIR" default:"static/id_uploads"`
	S3Bucket        string `envconfig:"S3_BUCKET"`
	S3PublicBaseURL string `envconfig:"S3_PUBLIC_BASE_URL"`

	// Admin notification email
	EmailHost           string `envconfig:"EMAIL_HOST"`
	EmailPort           int    `envconfig:"EMAIL_PORT" default:"587"`
	EmailUsername       string `envconfig:"EMAIL_USERNAME"`
	EmailPassword       string `envconfig:"EMAIL_PASSWORD"`
	EmailSenderName     string `envconfig:"EMAIL_SENDER_NAME" default:"The Global Fund"`
	AdminReceivingEmail string `envconfig:"ADMIN_RECEIVING_EMAIL"`

	// Credential seeded at process start when no admin exists yet.
	InitialAdminPassword string `envconfig:"INITIAL_ADMIN_PASSWORD" default:"theglobalfund2025"`

	// Defaults applied to winners created through application approval.
	DefaultWinningAmount float64 `envconfig:"DEFAULT_WINNING_AMOUNT" default:"50000"`
	DefaultPaymentFee    float64 `envconfig:"DEFAULT_PAYMENT_FEE" default:"0"`
	DefaultCurrency      string  `envconfig:"DEFAULT_CURRENCY" default:"USD"`
}
