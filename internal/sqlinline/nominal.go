package sqlinline

const QListNominalRulesForEntity = `--sql 1b09ab5e-da08-4889-86ec-5e5a37383696
select id, name, priority, entity_id, item_type, keywords, exclude_keywords, nominal_code_id
from nominal_code_rules
where entity_id = 'all' or entity_id = $1::text
order by priority desc, position, id;
`

const QDeleteNominalRules = `--sql bd7e02c4-970e-4287-91b6-e93810647d41
delete from nominal_code_rules;
`

const QUpsertNominalCode = `--sql 57bea7b0-1ae0-4227-a104-932c722a90ba
insert into nominal_codes(id, code, name)
values ($1::text, $2::text, $3::text)
on conflict (id) do update set code = excluded.code, name = excluded.name;
`

const QInsertNominalRule = `--sql 2d2587f4-23d2-4ee4-81d8-fec1cccdac10
insert into nominal_code_rules(id, name, priority, entity_id, item_type, keywords, exclude_keywords, nominal_code_id, position)
values ($1::text, $2::text, $3::int, $4::text, $5::text, $6::text, $7::text, $8::text, $9::int);
`
