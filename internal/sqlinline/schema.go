package sqlinline

const QEnsureSchemaMigrations = `--sql 3f1c9a57-84e2-4b0d-a6c1-2d97e5b40c18
create table if not exists schema_migrations (
    version    text primary key,
    applied_at timestamptz not null default now()
);
`

const QSelectAppliedMigrations = `--sql 9e27d4b1-6c5a-4f83-b0e9-51a8c3d7f264
select version from schema_migrations;
`

const QInsertAppliedMigration = `--sql c6a84f02-3b9d-47e1-8d25-e0f71b96a3c5
insert into schema_migrations(version, applied_at) values ($1::text, now());
`
