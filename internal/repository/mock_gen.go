// internal/repository/mock_gen.go
package repository

//go:generate mockgen -source=./user.go -destination=../mocks/mock_user_repository.go -package=mocks UserRepositoryIface
//go:generate mockgen -source=./organization.go -destination=../mocks/mock_organization_repository.go -package=mocks OrganizationRepositoryIface
//go:generate mockgen -source=./access_point.go -destination=../mocks/mock_access_point_repository.go -package=mocks AccessPointRepositoryIface
//go:generate mockgen -source=./password.go -destination=../mocks/mock_password_repository.go -package=mocks PasswordRepositoryIface
//go:generate mockgen -source=./rating.go -destination=../mocks/mock_rating_repository.go -package=mocks RatingRepositoryIface
//go:generate mockgen -source=./service_block.go -destination=../mocks/mock_service_block_repository.go -package=mocks ServiceBlockRepositoryIface
//go:generate mockgen -source=./speedtest.go -destination=../mocks/mock_speedtest_repository.go -package=mocks SpeedTestRepositoryIface
//go:generate mockgen -source=./favorite.go -destination=../mocks/mock_favorite_repository.go -package=mocks FavoriteRepositoryIface
//go:generate mockgen -source=./credential_audit_log.go -destination=../mocks/mock_credential_audit_log_repository.go -package=mocks CredentialAuditLogRepositoryIface
