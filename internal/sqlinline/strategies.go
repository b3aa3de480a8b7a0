package sqlinline

const QInsertStrategicPlan = `--sql bb013150-5f7c-4af9-8bc0-de6f12a2c4e5
insert into strategic_plans (id, user_id, brand_id, title, swot, competitors, audience_personas, roadmap, created_at)
values ($1::uuid, $2::uuid, $3::uuid, $4, $5::jsonb, $6::jsonb, $7::jsonb, $8::jsonb, now())
returning created_at;
`

const QSelectStrategicPlanByID = `--sql 9afb8324-601d-4656-af70-74f4d51d5573
select id::text, user_id::text, brand_id::text, title, swot, competitors, audience_personas, roadmap, created_at
from strategic_plans
where id = $1::uuid
limit 1;
`

const QDeleteStrategicPlan = `--sql 489816d9-6bda-46a9-98e5-cd39ddb72c3d
delete from strategic_plans
where id = $1::uuid;
`

const QListStrategicPlansByUser = `--sql c75b3f70-00c7-4f3c-b993-a0ead016b82b
select id::text, user_id::text, brand_id::text, title, swot, competitors, audience_personas, roadmap, created_at
from strategic_plans
where user_id = $1::uuid
order by created_at desc;
`
