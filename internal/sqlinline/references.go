package sqlinline

const QInsertEntity = `--sql 5b0e2f7c-1a8d-4c63-9d2e-7f4a61c3b915
insert into business_entities(id, name, short_code, created_at)
values ($1::uuid, $2::text, $3::text, now());
`

const QSelectEntity = `--sql dea6ca85-742e-4722-845d-89da0c94beec
select id::text, name, short_code
from business_entities
where id = $1::uuid;
`

// QLockEntity serializes reference reservations per entity.
const QLockEntity = `--sql d9e6cde4-704b-490a-8a12-2f6bba82fb9c
select short_code
from business_entities
where id = $1::uuid
for update;
`

const QListIssuedReferences = `--sql c20c38c9-2c2d-4f27-b54b-e1e5f6498c41
select reference
from issued_references
where reference like $1::text || '%';
`

const QInsertIssuedReference = `--sql 78c51804-afb0-4a84-9ef5-b46388bf2b62
insert into issued_references(reference, entity_id, issued_at)
values ($1::text, $2::uuid, now());
`
